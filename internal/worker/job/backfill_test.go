package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var backfillHeader = []string{
	"tx_digest", "event_seq", "package_id", "transaction_module",
	"sender", "type", "parsed_json", "timestamp_ms", "checkpoint", "gas_used",
}

func backfillField(row []string, name string) string {
	for i, h := range backfillHeader {
		if h == name {
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
	}
	return ""
}

func TestBackfillParseRow(t *testing.T) {
	j := &BackfillJob{tl: zap.NewNop()}

	row := []string{
		"DigestABC", "2", "0x1eabed72", "pool",
		"0xsender", "0x1eabed72::pool::SwapEvent",
		`{"amount_in":"100"}`, "1700000000000", "5000",
		`{"computationCost":"750000","storageCost":"988000","storageRebate":"978120"}`,
	}
	ev, err := j.parseRow(row, backfillField, 5000)
	require.NoError(t, err)

	assert.Equal(t, "DigestABC", ev.ID.TxDigest)
	assert.Equal(t, int64(2), ev.ID.EventSeq)
	assert.Equal(t, "0x1eabed72::pool::SwapEvent", ev.Type)
	assert.Equal(t, int64(1700000000000), ev.TimestampMs)
	assert.Equal(t, int64(5000), ev.Checkpoint)
	assert.JSONEq(t, `{"amount_in":"100"}`, string(ev.ParsedJSON))
	assert.Equal(t, "750000", ev.GasUsed["computationCost"])
}

func TestBackfillParseRowRejectsMalformed(t *testing.T) {
	j := &BackfillJob{tl: zap.NewNop()}

	// 缺digest
	row := []string{
		"", "2", "0x1", "pool", "0xs", "0x1::pool::SwapEvent",
		"", "1700000000000", "5000", "",
	}
	_, err := j.parseRow(row, backfillField, 5000)
	assert.Error(t, err)

	// 时间戳非数字
	row = []string{
		"DigestABC", "2", "0x1", "pool", "0xs", "0x1::pool::SwapEvent",
		"", "not-a-number", "5000", "",
	}
	_, err = j.parseRow(row, backfillField, 5000)
	assert.Error(t, err)

	// gas_used 非法JSON
	row = []string{
		"DigestABC", "2", "0x1", "pool", "0xs", "0x1::pool::SwapEvent",
		"", "1700000000000", "5000", "{broken",
	}
	_, err = j.parseRow(row, backfillField, 5000)
	assert.Error(t, err)
}
