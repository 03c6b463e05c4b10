package mirror_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
	"github.com/MrJamesThe3rd/dompet/internal/transaction/mirror"
)

var rec = transaction.Record{
	Timestamp: "2024-05-17 09:30:00",
	Type:      transaction.TypeExpense,
	Amount:    25000,
	Category:  transaction.CategoryFood,
	Note:      "beli kopi",
}

func TestStore_Append(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(primary, secondary *transaction.MockRepository)
		wantErr   bool
	}{
		{
			name: "BothSucceed",
			setupMock: func(primary, secondary *transaction.MockRepository) {
				primary.EXPECT().Append(gomock.Any(), rec).Return(nil)
				secondary.EXPECT().Append(gomock.Any(), rec).Return(nil)
			},
		},
		{
			name: "SecondaryFailureSwallowed",
			setupMock: func(primary, secondary *transaction.MockRepository) {
				primary.EXPECT().Append(gomock.Any(), rec).Return(nil)
				secondary.EXPECT().Append(gomock.Any(), rec).Return(errors.New("sheets down"))
			},
		},
		{
			name: "PrimaryFailureSkipsSecondary",
			setupMock: func(primary, _ *transaction.MockRepository) {
				primary.EXPECT().Append(gomock.Any(), rec).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			primary := transaction.NewMockRepository(ctrl)
			secondary := transaction.NewMockRepository(ctrl)
			tt.setupMock(primary, secondary)

			err := mirror.New(zerolog.Nop(), primary, secondary).Append(context.Background(), rec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestStore_ListAllReadsPrimary(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := transaction.NewMockRepository(ctrl)
	primary.EXPECT().ListAll(gomock.Any()).Return([]transaction.Record{rec}, nil)

	secondary := transaction.NewMockRepository(ctrl)

	got, err := mirror.New(zerolog.Nop(), primary, secondary).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []transaction.Record{rec}, got)
}
