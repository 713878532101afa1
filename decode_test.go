package jsonrpc2

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrors(t *testing.T, text string) ValidationErrors {
	t.Helper()
	msg, err := Unmarshal([]byte(text))
	require.Error(t, err)
	assert.Nil(t, msg)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestDecodeMessage_Request(t *testing.T) {
	t.Run("named params and numeric id", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"addTransaction","params":{"from":1,"to":2,"value":10},"id":7}`))
		require.NoError(t, err)

		req, ok := msg.(Request)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, "addTransaction", req.Method())
		assert.Equal(t, NamedParams(map[string]json.RawMessage{
			"from":  json.RawMessage(`1`),
			"to":    json.RawMessage(`2`),
			"value": json.RawMessage(`10`),
		}), req.Params())
		assert.Equal(t, IntID(7), req.ID())
	})

	t.Run("positional params and string id", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"sum","params":[1, 2, {"a": [3]}],"id":"abc"}`))
		require.NoError(t, err)

		req := msg.(Request)
		assert.Equal(t, PositionalParams(json.RawMessage(`1`), json.RawMessage(`2`), json.RawMessage(`{"a":[3]}`)), req.Params())
		assert.Equal(t, StringID("abc"), req.ID())
	})

	t.Run("null id is a request with the zero id", func(t *testing.T) {
		for _, text := range []string{
			`{"jsonrpc":"2.0","method":"a","id":null}`,
			`{"jsonrpc":"2.0","method":"a","params":[],"id":null}`,
		} {
			msg, err := Unmarshal([]byte(text))
			require.NoError(t, err, text)

			req, ok := msg.(Request)
			require.True(t, ok, "got %T", msg)
			assert.True(t, req.ID().IsZero())

			raw, err := EncodeMessage(req)
			require.NoError(t, err)
			assert.Equal(t, text, string(raw))
		}
	})

	t.Run("params are optional", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"ping","id":1}`))
		require.NoError(t, err)

		req := msg.(Request)
		assert.True(t, req.Params().IsZero())
	})

	t.Run("id beyond 64 bits keeps its digits", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"ping","id":123456789012345678901234567890}`))
		require.NoError(t, err)

		n, ok := msg.(Request).ID().Number()
		require.True(t, ok)
		assert.Equal(t, json.Number("123456789012345678901234567890"), n)
	})

	t.Run("decimal id keeps its text", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"ping","id":1.50}`))
		require.NoError(t, err)

		n, _ := msg.(Request).ID().Number()
		assert.Equal(t, json.Number("1.50"), n)
	})

	t.Run("unknown members are ignored", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"ping","id":1,"extra":true}`))
		require.NoError(t, err)
		assert.IsType(t, Request{}, msg)
	})
}

func TestDecodeMessage_Notification(t *testing.T) {
	t.Run("without id", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","method":"a","params":[]}`))
		require.NoError(t, err)

		n, ok := msg.(Notification)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, "a", n.Method())
		assert.Equal(t, PositionalParams(), n.Params())
	})

	t.Run("params are required", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","method":"a"}`)
		assert.Equal(t, ValidationErrors{{Path: "/params", Reason: "required for notifications"}}, verrs)
	})
}

func TestDecodeMessage_InvalidEnvelope(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ValidationErrors
	}{
		{
			name: "missing version",
			text: `{"method":"a","id":1}`,
			want: ValidationErrors{{Path: "/jsonrpc", Reason: "required"}},
		},
		{
			name: "wrong version",
			text: `{"jsonrpc":"1.0","method":"a","id":1}`,
			want: ValidationErrors{{Path: "/jsonrpc", Reason: `must be "2.0"`}},
		},
		{
			name: "numeric version",
			text: `{"jsonrpc":2.0,"method":"a","id":1}`,
			want: ValidationErrors{{Path: "/jsonrpc", Reason: `must be "2.0"`}},
		},
		{
			name: "empty method",
			text: `{"jsonrpc":"2.0","method":"","id":1}`,
			want: ValidationErrors{{Path: "/method", Reason: "must not be empty"}},
		},
		{
			name: "method is not a string",
			text: `{"jsonrpc":"2.0","method":5,"id":1}`,
			want: ValidationErrors{{Path: "/method", Reason: "must be a string"}},
		},
		{
			name: "scalar params",
			text: `{"jsonrpc":"2.0","method":"a","params":"x","id":1}`,
			want: ValidationErrors{{Path: "/params", Reason: "must be an array or an object"}},
		},
		{
			name: "boolean id",
			text: `{"jsonrpc":"2.0","method":"a","id":true}`,
			want: ValidationErrors{{Path: "/id", Reason: "must be a string or a number"}},
		},
		{
			name: "every offending field is reported",
			text: `{"jsonrpc":"1.0","method":"","params":5,"id":{}}`,
			want: ValidationErrors{
				{Path: "/jsonrpc", Reason: `must be "2.0"`},
				{Path: "/method", Reason: "must not be empty"},
				{Path: "/params", Reason: "must be an array or an object"},
				{Path: "/id", Reason: "must be a string or a number"},
			},
		},
		{
			name: "scalar message",
			text: `42`,
			want: ValidationErrors{{Reason: "message must be an object or an array"}},
		},
		{
			name: "object without method, result or error",
			text: `{"jsonrpc":"2.0","id":1}`,
			want: ValidationErrors{{Reason: `message has neither "method" nor "result"/"error"`}},
		},
		{
			name: "object with method and result",
			text: `{"jsonrpc":"2.0","method":"a","result":1,"id":1}`,
			want: ValidationErrors{{Reason: "message carries both request and response members"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeErrors(t, tt.text))
		})
	}
}

func TestDecodeMessage_Response(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","result":{"balance": 10},"id":7}`))
		require.NoError(t, err)

		resp, ok := msg.(Response)
		require.True(t, ok, "got %T", msg)
		result, ok := resp.Result()
		require.True(t, ok)
		assert.Equal(t, json.RawMessage(`{"balance":10}`), result)
		assert.Equal(t, IntID(7), resp.ID())
		assert.False(t, resp.IsError())
	})

	t.Run("null result", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","result":null,"id":"x"}`))
		require.NoError(t, err)

		result, ok := msg.(Response).Result()
		require.True(t, ok)
		assert.Equal(t, json.RawMessage(`null`), result)
	})

	t.Run("error with null id", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error"},"id":null}`))
		require.NoError(t, err)

		resp := msg.(Response)
		assert.True(t, resp.ID().IsZero())
		rerr, ok := resp.Err()
		require.True(t, ok)
		assert.Equal(t, CodeParseError, rerr.Code())
		assert.Equal(t, "Parse error", rerr.Message())
		_, hasData := rerr.Data()
		assert.False(t, hasData)
	})

	t.Run("error codes from peers are not range checked", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`{"jsonrpc":"2.0","error":{"code":-32050,"message":"busy","data":[1]},"id":3}`))
		require.NoError(t, err)

		rerr, _ := msg.(Response).Err()
		assert.Equal(t, -32050, rerr.Code())
		data, ok := rerr.Data()
		require.True(t, ok)
		assert.Equal(t, json.RawMessage(`[1]`), data)
	})

	t.Run("result and error together", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","result":1,"error":{"code":1,"message":"m"},"id":1}`)
		assert.Equal(t, ValidationErrors{{Reason: `response must carry exactly one of "result" and "error"`}}, verrs)

		resp := ResponseFor(verrs, IntID(1))
		rerr, _ := resp.Err()
		assert.Equal(t, CodeInvalidRequest, rerr.Code())
	})

	t.Run("missing id", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","result":1}`)
		assert.Equal(t, ValidationErrors{{Path: "/id", Reason: "required"}}, verrs)
	})

	t.Run("malformed error object", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","error":{"code":"x"},"id":1}`)
		assert.Equal(t, ValidationErrors{
			{Path: "/error/code", Reason: "must be an integer"},
			{Path: "/error/message", Reason: "required"},
		}, verrs)
	})

	t.Run("fractional error code", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","error":{"code":1.5,"message":"m"},"id":1}`)
		assert.Equal(t, ValidationErrors{{Path: "/error/code", Reason: "must be an integer"}}, verrs)
	})

	t.Run("error is not an object", func(t *testing.T) {
		verrs := decodeErrors(t, `{"jsonrpc":"2.0","error":"boom","id":1}`)
		assert.Equal(t, ValidationErrors{{Path: "/error", Reason: "must be an object"}}, verrs)
	})
}

func TestDecodeMessage_Batch(t *testing.T) {
	t.Run("requests and notifications", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`[
			{"jsonrpc":"2.0","method":"a","params":[1],"id":1},
			{"jsonrpc":"2.0","method":"b","params":{}}
		]`))
		require.NoError(t, err)

		batch, ok := msg.(RequestBatch)
		require.True(t, ok, "got %T", msg)
		entries := batch.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, NewRequest("a", PositionalParams(json.RawMessage(`1`)), IntID(1)), entries[0])
		assert.Equal(t, NewNotification("b", NamedParams(nil)), entries[1])
	})

	t.Run("responses", func(t *testing.T) {
		msg, err := Unmarshal([]byte(`[
			{"jsonrpc":"2.0","result":"ok","id":2},
			{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":1}
		]`))
		require.NoError(t, err)

		batch, ok := msg.(ResponseBatch)
		require.True(t, ok, "got %T", msg)
		responses := batch.Responses()
		require.Len(t, responses, 2)
		assert.Equal(t, IntID(2), responses[0].ID())
		assert.True(t, responses[1].IsError())
	})

	t.Run("empty batch", func(t *testing.T) {
		verrs := decodeErrors(t, `[]`)
		assert.Equal(t, ValidationErrors{{Reason: "batch must not be empty"}}, verrs)
	})

	t.Run("notification mixed with response", func(t *testing.T) {
		verrs := decodeErrors(t, `[{"jsonrpc":"2.0","method":"a","params":[]},{"jsonrpc":"2.0","result":1,"id":1}]`)
		assert.Equal(t, ValidationErrors{{Reason: "batch mixes requests and responses"}}, verrs)
	})

	t.Run("unclassifiable elements are reported at their index", func(t *testing.T) {
		verrs := decodeErrors(t, `[{"jsonrpc":"2.0","method":"a","id":1}, 5, {"jsonrpc":"2.0","id":2}, []]`)
		assert.Equal(t, ValidationErrors{
			{Path: "/1", Reason: "batch element must be an object"},
			{Path: "/2", Reason: `batch element has neither "method" nor "result"/"error"`},
			{Path: "/3", Reason: "batch element must be an object"},
		}, verrs)
	})

	t.Run("mixing is reported before element errors", func(t *testing.T) {
		verrs := decodeErrors(t, `[{"jsonrpc":"2.0","method":"a","id":1}, true, {"jsonrpc":"2.0","result":1,"id":1}]`)
		assert.Equal(t, ValidationErrors{
			{Reason: "batch mixes requests and responses"},
			{Path: "/1", Reason: "batch element must be an object"},
		}, verrs)
	})

	t.Run("element field errors carry the index", func(t *testing.T) {
		verrs := decodeErrors(t, `[{"jsonrpc":"2.0","method":"a","id":1},{"jsonrpc":"2.0","method":"","id":2},{"jsonrpc":"2.0","method":"c"}]`)
		assert.Equal(t, ValidationErrors{
			{Path: "/1/method", Reason: "must not be empty"},
			{Path: "/2/params", Reason: "required for notifications"},
		}, verrs)
	})

	t.Run("response element errors carry the index", func(t *testing.T) {
		verrs := decodeErrors(t, `[{"jsonrpc":"2.0","result":1,"id":1},{"jsonrpc":"2.0","result":2,"id":false}]`)
		assert.Equal(t, ValidationErrors{{Path: "/1/id", Reason: "must be a string or a number"}}, verrs)
	})
}

func TestDecodeMessage_NotJSON(t *testing.T) {
	t.Run("decode rejects invalid raw value", func(t *testing.T) {
		msg, err := DecodeMessage(json.RawMessage(`{"jsonrpc":`))
		assert.Nil(t, msg)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, ValidationErrors{{Reason: "not a valid JSON value"}}, verrs)
	})

	t.Run("unmarshal reports a syntax error", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"jsonrpc":"2.0",`))
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		var verrs ValidationErrors
		assert.False(t, errors.As(err, &verrs))
	})

	t.Run("trailing data is a syntax error", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{} {}`))
		var syntaxErr *SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)
	})
}

func TestUnmarshalJSON_ConcreteTypes(t *testing.T) {
	t.Run("request", func(t *testing.T) {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"a","id":1}`), &req))
		assert.Equal(t, NewRequest("a", Params{}, IntID(1)), req)
	})

	t.Run("request rejects notification", func(t *testing.T) {
		var req Request
		err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"a","params":[]}`), &req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot decode")
	})

	t.Run("response inside a caller struct", func(t *testing.T) {
		var envelope struct {
			Reply Response `json:"reply"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"reply":{"jsonrpc":"2.0","result":true,"id":"q"}}`), &envelope))
		assert.Equal(t, NewResultResponse(json.RawMessage(`true`), StringID("q")), envelope.Reply)
	})
}
