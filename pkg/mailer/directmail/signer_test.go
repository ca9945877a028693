package directmail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSign_Golden(t *testing.T) {
	t.Parallel()

	signature, err := Sign(Params{"A": "b"}, "testsecret")

	require.NoError(t, err)
	require.Equal(t, "fj3GSSDI6l+L+7S6NEDuo341jjY=", signature)
}

func TestSign_Idempotent(t *testing.T) {
	t.Parallel()

	params := Params{
		"Subject":   "Hello World",
		"ToAddress": "alice@example.com",
		"Timestamp": "2024-01-02T03:04:05Z",
	}

	first, err := Sign(params, "secret")
	require.NoError(t, err)
	second, err := Sign(params, "secret")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSign_SensitiveToEveryInput(t *testing.T) {
	t.Parallel()

	base, err := Sign(Params{"A": "b", "C": "d"}, "testsecret")
	require.NoError(t, err)

	tests := []struct {
		name   string
		params Params
		secret string
	}{
		{name: "changed value", params: Params{"A": "c", "C": "d"}, secret: "testsecret"},
		{name: "changed key", params: Params{"B": "b", "C": "d"}, secret: "testsecret"},
		{name: "extra parameter", params: Params{"A": "b", "C": "d", "E": "f"}, secret: "testsecret"},
		{name: "changed secret", params: Params{"A": "b", "C": "d"}, secret: "testsecreT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			signature, err := Sign(tt.params, tt.secret)
			require.NoError(t, err)
			require.NotEqual(t, base, signature)
		})
	}
}

func TestSign_ChangedValueGolden(t *testing.T) {
	t.Parallel()

	signature, err := Sign(Params{"A": "c"}, "testsecret")

	require.NoError(t, err)
	require.Equal(t, "2JjQ2tlwPDEsD2xRd8kAjJQSuQA=", signature)
}

func TestSign_EmptyParams(t *testing.T) {
	t.Parallel()

	_, err := Sign(Params{}, "testsecret")

	require.ErrorIs(t, err, ErrSigning)
}

func TestPercentEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "abcXYZ019", expected: "abcXYZ019"},
		{input: "-_.~", expected: "-_.~"},
		{input: "hello world", expected: "hello%20world"},
		{input: "a+b", expected: "a%2Bb"},
		{input: "a/b", expected: "a%2Fb"},
		{input: "a&b=c", expected: "a%26b%3Dc"},
		{input: "12:30", expected: "12%3A30"},
		{input: "*", expected: "%2A"},
		{input: "user@example.com", expected: "user%40example.com"},
		{input: "Alice <a@b.c>", expected: "Alice%20%3Ca%40b.c%3E"},
		{input: "é", expected: "%C3%A9"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, percentEncode(tt.input))
		})
	}
}

func TestCanonicalQuery_SortedAndEncoded(t *testing.T) {
	t.Parallel()

	params := Params{
		"Subject":     "Hi there",
		"AccessKeyId": "key",
		"Timestamp":   "2024-01-02T03:04:05Z",
		"a":           "lower",
	}

	require.Equal(t,
		"AccessKeyId=key&Subject=Hi%20there&Timestamp=2024-01-02T03%3A04%3A05Z&a=lower",
		CanonicalQuery(params),
	)
}

func TestStringToSign_DoubleEncodesQuery(t *testing.T) {
	t.Parallel()

	params := Params{"Subject": "Hi there", "A": "b"}

	require.Equal(t, "POST&%2F&A%3Db%26Subject%3DHi%2520there", StringToSign(params))
}
