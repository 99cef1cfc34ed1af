package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTransactionsCSV(t *testing.T) {
	input := strings.Join([]string{
		"id,date,amount,category,name,merchant_name",
		"tx-1,2026-01-15,-15.99,Entertainment,NETFLIX.COM,Netflix",
		",2026-01-16,3000.00,Income,Salary,",
		"tx-3,2026-01-17,-42.5,,Corner Cafe,",
	}, "\n")

	txs, err := ReadTransactionsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, -15.99, txs[0].Amount)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), txs[0].Date)
	require.NotNil(t, txs[0].Category)
	assert.Equal(t, "Entertainment", *txs[0].Category)
	require.NotNil(t, txs[0].MerchantName)
	assert.Equal(t, "Netflix", *txs[0].MerchantName)

	assert.Empty(t, txs[1].ID, "missing id should stay empty for the service to assign")
	assert.Equal(t, 3000.0, txs[1].Amount)
	assert.Nil(t, txs[1].MerchantName)

	assert.Nil(t, txs[2].Category)
	assert.Equal(t, -42.5, txs[2].Amount)
}

func TestReadTransactionsCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "wrong header",
			input:   "id,when,amount,category,name,merchant_name\n",
			wantErr: "unexpected column",
		},
		{
			name:    "missing columns",
			input:   "id,date,amount\n",
			wantErr: "wrong number of fields",
		},
		{
			name:    "bad amount",
			input:   "id,date,amount,category,name,merchant_name\ntx-1,2026-01-15,abc,,Lunch,\n",
			wantErr: "could not parse amount",
		},
		{
			name:    "bad date",
			input:   "id,date,amount,category,name,merchant_name\ntx-1,01/15/2026,-10,,Lunch,\n",
			wantErr: "could not parse date",
		},
		{
			name:    "missing name",
			input:   "id,date,amount,category,name,merchant_name\ntx-1,2026-01-15,-10,,,\n",
			wantErr: "name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactionsCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadTransactionsCSVEmptyBody(t *testing.T) {
	txs, err := ReadTransactionsCSV(strings.NewReader("id,date,amount,category,name,merchant_name\n"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}
