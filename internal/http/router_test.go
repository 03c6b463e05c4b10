package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/classify"
	"github.com/MrJamesThe3rd/dompet/internal/clock"
	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/importer"
	apihttp "github.com/MrJamesThe3rd/dompet/internal/http"
	exporthttp "github.com/MrJamesThe3rd/dompet/internal/http/export"
	importhttp "github.com/MrJamesThe3rd/dompet/internal/http/importcsv"
	summaryhttp "github.com/MrJamesThe3rd/dompet/internal/http/summary"
	txhttp "github.com/MrJamesThe3rd/dompet/internal/http/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/speech"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var now = time.Date(2024, 5, 17, 21, 0, 0, 0, clock.WIB)

var ledger = []transaction.Record{
	{Timestamp: "2024-05-17 08:00:00", Type: transaction.TypeIncome, Amount: 50000, Category: transaction.CategoryOther, Note: "refund"},
	{Timestamp: "2024-05-17 12:00:00", Type: transaction.TypeExpense, Amount: 25000, Category: transaction.CategoryFood, Note: "beli kopi"},
	{Timestamp: "2024-05-01 12:00:00", Type: transaction.TypeExpense, Amount: 10000, Category: transaction.CategoryTransport, Note: "parkir"},
}

func newRouter(repo transaction.Repository, stt transaction.Transcriber) http.Handler {
	svc := transaction.NewService(repo, classify.New(), stt, clock.Fixed{T: now})

	return apihttp.New(
		zerolog.Nop(),
		txhttp.NewHandler(svc),
		summaryhttp.NewHandler(svc),
		exporthttp.NewHandler(export.NewService(svc)),
		importhttp.NewHandler(importer.NewService(classify.New(), clock.WIB), svc),
	)
}

func do(h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestCreateTransaction(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *transaction.MockRepository)
		wantStatus int
	}{
		{
			name: "Created",
			body: `{"text":"Beli kopi 25 ribu"}`,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "NoAmount",
			body:       `{"text":"beli kopi"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "BlankText",
			body:       `{"text":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingText",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InvalidJSON",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "StoreError",
			body: `{"text":"parkir 2rb"}`,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := do(newRouter(repo, speech.Nop{}), http.MethodPost, "/api/v1/transactions", "application/json", []byte(tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateTransaction_Body(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	rec := do(newRouter(repo, speech.Nop{}), http.MethodPost, "/api/v1/transactions", "application/json", []byte(`{"text":"Gaji 5 juta"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2024-05-17 21:00:00", got["timestamp"])
	assert.Equal(t, "income", got["type"])
	assert.Equal(t, "Pemasukan", got["label"])
	assert.InDelta(t, 5000000, got["amount"], 0)
}

func TestPreview(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(transaction.NewMockRepository(ctrl), speech.Nop{})

	rec := do(h, http.MethodPost, "/api/v1/transactions/preview", "application/json", []byte(`{"text":"top up game 50rb"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"amount":50000,"found":true,"type":"expense","category":"Hiburan & Game","note":"top up game 50rb"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/api/v1/transactions/preview", "application/json", []byte(`{"text":"halo"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"amount":null,"found":false,"type":"expense","category":"Lainnya","note":"halo"}`, rec.Body.String())
}

func TestPreview_WrongContentType(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := do(newRouter(transaction.NewMockRepository(ctrl), speech.Nop{}), http.MethodPost, "/api/v1/transactions/preview", "text/plain", []byte(`{"text":"x"}`))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func voiceRequest(t *testing.T) (string, []byte) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("audio", "voice.ogg")
	require.NoError(t, err)

	_, err = part.Write([]byte("OggS-voice"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return mw.FormDataContentType(), buf.Bytes()
}

func TestVoice(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(repo *transaction.MockRepository, stt *transaction.MockTranscriber)
		disabled   bool
		wantStatus int
		wantBody   string
	}{
		{
			name: "Created",
			setupMock: func(repo *transaction.MockRepository, stt *transaction.MockTranscriber) {
				stt.EXPECT().Transcribe(gomock.Any(), []byte("OggS-voice"), gomock.Any()).Return("bayar parkir dua ribu", nil)
				repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"transcript":"bayar parkir dua ribu"`,
		},
		{
			name: "NoAmount",
			setupMock: func(_ *transaction.MockRepository, stt *transaction.MockTranscriber) {
				stt.EXPECT().Transcribe(gomock.Any(), gomock.Any(), gomock.Any()).Return("beli kopi", nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"transcript":"beli kopi"`,
		},
		{
			name: "TranscriptionFailed",
			setupMock: func(_ *transaction.MockRepository, stt *transaction.MockTranscriber) {
				stt.EXPECT().Transcribe(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("quota"))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "Disabled",
			disabled:   true,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := transaction.NewMockRepository(ctrl)
			stt := transaction.NewMockTranscriber(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, stt)
			}

			var transcriber transaction.Transcriber = stt
			if tt.disabled {
				transcriber = speech.Nop{}
			}

			ct, body := voiceRequest(t)
			rec := do(newRouter(repo, transcriber), http.MethodPost, "/api/v1/transactions/voice", ct, body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestVoice_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := do(newRouter(transaction.NewMockRepository(ctrl), speech.Nop{}), http.MethodPost, "/api/v1/transactions/voice", "application/json", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return(ledger, nil).Times(2)

	h := newRouter(repo, speech.Nop{})

	var all []map[string]any

	rec := do(h, http.MethodGet, "/api/v1/transactions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	var daily []map[string]any

	rec = do(h, http.MethodGet, "/api/v1/transactions?period=harian", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &daily))
	assert.Len(t, daily, 2)

	rec = do(h, http.MethodGet, "/api/v1/transactions?period=tahunan", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return(ledger, nil)

	h := newRouter(repo, speech.Nop{})

	rec := do(h, http.MethodGet, "/api/v1/summary/monthly", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"period":"bulanan","income":50000,"expense":35000,"balance":15000}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/v1/summary/tahunan", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return(ledger, nil)

	rec := do(newRouter(repo, speech.Nop{}), http.MethodGet, "/api/v1/export?period=mingguan", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="dompet_mingguan_20240517.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows("Catatan")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := do(newRouter(transaction.NewMockRepository(ctrl), speech.Nop{}), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ok"))
}

func uploadRequest(t *testing.T, content string) (string, []byte) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", "mutasi.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return mw.FormDataContentType(), buf.Bytes()
}

func TestImport(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return(ledger, nil)
	repo.EXPECT().Append(gomock.Any(), transaction.Record{
		Timestamp: "2024-05-18 00:00:00",
		Type:      transaction.TypeExpense,
		Amount:    5000,
		Category:  transaction.CategoryTransport,
		Note:      "bayar parkir",
	}).Return(nil)

	ct, body := uploadRequest(t, "Waktu;Jenis;Jumlah;Kategori;Keterangan\n"+
		"2024-05-17 12:00:00;Pengeluaran;25000;Makanan & Minuman;beli kopi\n"+
		"2024-05-18 00:00:00;Pengeluaran;5.000;Transport;bayar parkir\n")

	rec := do(newRouter(repo, speech.Nop{}), http.MethodPost, "/api/v1/import", ct, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 1, got["imported"], 0)
	assert.InDelta(t, 1, got["duplicates"], 0)
}

func TestImport_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)

	ct, body := uploadRequest(t, "a,b\n1,2\n")

	rec := do(newRouter(transaction.NewMockRepository(ctrl), speech.Nop{}), http.MethodPost, "/api/v1/import", ct, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
