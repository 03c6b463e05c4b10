package transaction

import (
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type recordResponse struct {
	Timestamp string               `json:"timestamp"`
	Type      transaction.Type     `json:"type"`
	Label     string               `json:"label"`
	Amount    int64                `json:"amount"`
	Category  transaction.Category `json:"category"`
	Note      string               `json:"note"`
}

type draftResponse struct {
	Amount   *int64               `json:"amount"`
	Found    bool                 `json:"found"`
	Type     transaction.Type     `json:"type"`
	Category transaction.Category `json:"category"`
	Note     string               `json:"note"`
}

type voiceResponse struct {
	Record     *recordResponse `json:"record,omitempty"`
	Transcript string          `json:"transcript"`
	Error      string          `json:"error,omitempty"`
}

func toResponse(rec transaction.Record) recordResponse {
	return recordResponse{
		Timestamp: rec.Timestamp,
		Type:      rec.Type,
		Label:     rec.Type.Label(),
		Amount:    rec.Amount,
		Category:  rec.Category,
		Note:      rec.Note,
	}
}

func toResponseList(records []transaction.Record) []recordResponse {
	resp := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toResponse(rec))
	}

	return resp
}

func toDraftResponse(d transaction.Draft) draftResponse {
	resp := draftResponse{
		Found:    d.Found,
		Type:     d.Type,
		Category: d.Category,
		Note:     d.Note,
	}

	if d.Found {
		resp.Amount = new(d.Amount)
	}

	return resp
}
