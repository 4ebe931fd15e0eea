package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/caddyshack-fin/cadence/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240105120000[0:GMT]
<TRNAMT>-15.99
<FITID>2024010501
<NAME>NETFLIX.COM
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240112120000[0:GMT]
<TRNAMT>-40.00
<FITID>2024011201
<NAME>POS PURCHASE CITY GYM
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024011501
<NAME>PAYROLL ACME CORP
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-9.99
<FITID>2024011002
<NAME>SPOTIFY USA
</STMTTRN>
</BANKTRANLIST>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile_BankStatement(t *testing.T) {
	parser := NewParser()
	ctx := context.Background()

	txns, err := parser.ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	netflix := txns[0]
	assert.Equal(t, "2024010501", netflix.ID)
	assert.Equal(t, "NETFLIX.COM", netflix.MerchantName)
	assert.InDelta(t, 15.99, netflix.Amount, 0.001)
	assert.Equal(t, model.DirectionExpense, netflix.Direction)
	assert.Equal(t, "1234567890", netflix.AccountID)
	assert.NotEmpty(t, netflix.Hash)

	// "POS PURCHASE " prefix is stripped so the merchant groups cleanly.
	gym := txns[1]
	assert.Equal(t, "CITY GYM", gym.MerchantName)

	// Credits become negative-amount income.
	payroll := txns[2]
	assert.InDelta(t, -2500.00, payroll.Amount, 0.001)
	assert.Equal(t, model.DirectionIncome, payroll.Direction)
}

func TestParseFile_CreditCardStatement(t *testing.T) {
	parser := NewParser()
	ctx := context.Background()

	txns, err := parser.ParseFile(ctx, strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, "SPOTIFY USA", txns[0].MerchantName)
	assert.InDelta(t, 9.99, txns[0].Amount, 0.001)
	assert.Equal(t, model.DirectionExpense, txns[0].Direction)
	assert.Equal(t, "4111111111111111", txns[0].AccountID)
}

func TestParseFile_InvalidContent(t *testing.T) {
	parser := NewParser()
	ctx := context.Background()

	_, err := parser.ParseFile(ctx, strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	t.Run("uppercases severity", func(t *testing.T) {
		got := parser.preprocessOFX("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", got)
	})

	t.Run("closes dangling tags", func(t *testing.T) {
		got := parser.preprocessOFX("<OFX>\n<SONRS\n</OFX>")
		assert.Contains(t, got, "<SONRS>")
	})

	t.Run("trims leading whitespace", func(t *testing.T) {
		got := parser.preprocessOFX("\n\n  OFXHEADER:100")
		assert.True(t, strings.HasPrefix(got, "OFXHEADER"))
	})
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()
	ctx := context.Background()

	accounts, err := parser.GetAccounts(ctx, strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		txnName  string
		memo     string
		expected string
	}{
		{
			name:     "plain name passes through",
			txnName:  "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "strips purchase prefix",
			txnName:  "DEBIT CARD PURCHASE CITY GYM",
			expected: "CITY GYM",
		},
		{
			name:     "strips leading date stamp",
			txnName:  "01/15 CITY GYM",
			expected: "CITY GYM",
		},
		{
			name:     "generic name falls back to memo",
			txnName:  "DEBIT",
			memo:     "ACME POWER CO",
			expected: "ACME POWER CO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.txnName),
				Memo: ofxgo.String(tt.memo),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}
