package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/classify"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

func TestService_Import(t *testing.T) {
	kopi := transaction.Record{Timestamp: "2024-05-17 12:00:00", Type: transaction.TypeExpense, Amount: 25000, Category: transaction.CategoryFood, Note: "kopi"}
	gaji := transaction.Record{Timestamp: "2024-05-01 08:00:00", Type: transaction.TypeIncome, Amount: 5000000, Category: transaction.CategoryOther, Note: "gaji"}
	parkir := transaction.Record{Timestamp: "2024-05-02 08:00:00", Type: transaction.TypeExpense, Amount: 2000, Category: transaction.CategoryTransport, Note: "parkir"}

	tests := []struct {
		name           string
		input          []transaction.Record
		setupMock      func(m *transaction.MockRepository)
		wantImported   []transaction.Record
		wantDuplicates []transaction.Record
		wantErr        bool
	}{
		{
			name:  "SkipsExisting",
			input: []transaction.Record{kopi, gaji},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListAll(gomock.Any()).Return([]transaction.Record{kopi}, nil)
				m.EXPECT().Append(gomock.Any(), gaji).Return(nil)
			},
			wantImported:   []transaction.Record{gaji},
			wantDuplicates: []transaction.Record{kopi},
		},
		{
			name:  "SkipsRepeatsWithinBatch",
			input: []transaction.Record{parkir, parkir},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
				m.EXPECT().Append(gomock.Any(), parkir).Return(nil).Times(1)
			},
			wantImported:   []transaction.Record{parkir},
			wantDuplicates: []transaction.Record{parkir},
		},
		{
			name:  "StoreErrorKeepsProgress",
			input: []transaction.Record{gaji, parkir},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
				gomock.InOrder(
					m.EXPECT().Append(gomock.Any(), gaji).Return(nil),
					m.EXPECT().Append(gomock.Any(), parkir).Return(errors.New("disk full")),
				)
			},
			wantImported: []transaction.Record{gaji},
			wantErr:      true,
		},
		{
			name: "RejectsNonPositiveAmount",
			input: []transaction.Record{
				{Timestamp: "2024-05-02 08:00:00", Type: transaction.TypeExpense, Amount: 0, Note: "nol"},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
			},
			wantErr: true,
		},
		{
			name:  "ListError",
			input: []transaction.Record{kopi},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("unreadable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo, classify.New(), nil, fixedClock(time.Date(2024, 5, 17, 21, 0, 0, 0, jakarta)))

			got, err := svc.Import(context.Background(), tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantImported, got.Imported)
			assert.Equal(t, tt.wantDuplicates, got.Duplicates)
		})
	}
}
