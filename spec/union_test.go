package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSelectsVariant(t *testing.T) {
	tests := []struct {
		doc  string
		kind Kind
	}{
		{doc: "name: p\ntype: Predict\nuse: QA\n", kind: KindPredict},
		{doc: "name: r\ntype: ReAct\nuse: QA\ntools: [\"pkg.mod:tool_a\"]\n", kind: KindReAct},
		{doc: "name: c\ntype: CodeAct\nuse: QA\ntools: []\n", kind: KindCodeAct},
		{doc: "name: t\ntype: ChainOfThought\nuse: QA\n", kind: KindChainOfThought},
		{doc: `{"name": "j", "type": "Predict", "use": "QA", "config": {"stop": "END"}}`, kind: KindPredict},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			mod := decode(t, tc.doc)
			assert.Equal(t, tc.kind, mod.Kind())
			assert.Equal(t, tc.kind, mod.Info().Type)
		})
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	for _, tag := range []string{"Retrieve", "predict", "ProgramOfThought"} {
		t.Run(tag, func(t *testing.T) {
			mod, err := Decode([]byte("name: x\ntype: " + tag + "\nuse: QA\n"))
			serr := requireSchemaError(t, err)
			assert.Nil(t, mod)
			assert.Equal(t, "type", serr.Field)
			assert.Contains(t, err.Error(), "unknown module type")
		})
	}
}

func TestDecodeSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
		msg   string
	}{
		{name: "empty", doc: "  ", msg: "payload is empty"},
		{name: "not a mapping", doc: "- a\n- b\n", msg: "must be a mapping"},
		{name: "malformed", doc: "name: [unterminated", msg: "decode"},
		{name: "missing type", doc: "name: x\nuse: QA\n", field: "type", msg: "is required"},
		{name: "missing name", doc: "type: Predict\nuse: QA\n", field: "name", msg: "is required"},
		{name: "missing use", doc: "name: x\ntype: Predict\n", field: "use", msg: "is required"},
		{name: "react without tools", doc: "name: x\ntype: ReAct\nuse: QA\n", field: "tools", msg: "is required"},
		{name: "codeact null tools", doc: "name: x\ntype: CodeAct\nuse: QA\ntools: ~\n", field: "tools", msg: "must not be null"},
		{name: "field of another variant", doc: "name: x\ntype: Predict\nuse: QA\ntools: [\"pkg.mod:tool_a\"]\n", msg: "tools"},
		{name: "unknown config field", doc: "name: x\ntype: Predict\nuse: QA\nconfig: {top_p: 0.3}\n", msg: "top_p"},
		{name: "mistyped max_iters", doc: "name: x\ntype: ReAct\nuse: QA\ntools: []\nmax_iters: many\n", field: "max_iters", msg: "must be an integer"},
		{name: "fractional max_iters", doc: "name: x\ntype: ReAct\nuse: QA\ntools: []\nmax_iters: 2.7\n", field: "max_iters", msg: "must be an integer"},
		{name: "fractional codeact max_iters", doc: "name: x\ntype: CodeAct\nuse: QA\ntools: []\nmax_iters: 0.5\n", field: "max_iters", msg: "must be an integer"},
		{name: "fractional max_tokens", doc: "name: x\ntype: Predict\nuse: QA\nconfig:\n  max_tokens: 1.9\n", field: "config.max_tokens", msg: "must be an integer"},
		{name: "quoted max_tokens", doc: "name: x\ntype: Predict\nuse: QA\nconfig: {max_tokens: \"64\"}\n", field: "config.max_tokens", msg: "must be an integer"},
		{name: "integer name", doc: "name: 123\ntype: Predict\nuse: QA\n", field: "name", msg: "must be a string"},
		{name: "integer use", doc: "name: x\ntype: Predict\nuse: 456\n", field: "use", msg: "must be a string"},
		{name: "boolean rationale field", doc: "name: x\ntype: ChainOfThought\nuse: QA\nrationale_field: true\n", field: "rationale_field", msg: "must be a string"},
		{name: "integer tool reference", doc: "name: x\ntype: ReAct\nuse: QA\ntools: [\"pkg.mod:tool_a\", 7]\n", field: "tools[1]", msg: "must be a string"},
		{name: "mistyped tools", doc: "name: x\ntype: ReAct\nuse: QA\ntools: pkg.mod:tool_a\n", msg: "decode ReAct"},
		{name: "empty tool reference", doc: "name: x\ntype: ReAct\nuse: QA\ntools: [\"\"]\n", field: "tools[0]", msg: "reference is empty"},
		{name: "empty callback reference", doc: "name: x\ntype: Predict\nuse: QA\ncallbacks: [\" \"]\n", field: "callbacks[0]", msg: "reference is empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mod, err := Decode([]byte(tc.doc))
			serr := requireSchemaError(t, err)
			assert.Nil(t, mod)
			if tc.field != "" {
				assert.Equal(t, tc.field, serr.Field)
			}
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestDecodeAcceptsWholeNumberFloats(t *testing.T) {
	predict, ok := decode(t, "name: p\ntype: Predict\nuse: QA\nconfig: {max_tokens: 64.0}\n").(*PredictSpec)
	require.True(t, ok)
	require.NotNil(t, predict.Config.MaxTokens)
	assert.Equal(t, 64, *predict.Config.MaxTokens)

	react, ok := decode(t, "name: r\ntype: ReAct\nuse: QA\ntools: []\nmax_iters: 3\n").(*ReActSpec)
	require.True(t, ok)
	require.NotNil(t, react.MaxIters)
	assert.Equal(t, 3, *react.MaxIters)
}

func TestDecodeValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "temperature too high", doc: "name: x\ntype: Predict\nuse: QA\nconfig: {temperature: 2.5}\n", field: "config.temperature"},
		{name: "temperature negative", doc: "name: x\ntype: Predict\nuse: QA\nconfig: {temperature: -1}\n", field: "config.temperature"},
		{name: "max tokens zero", doc: "name: x\ntype: Predict\nuse: QA\nconfig: {max_tokens: 0}\n", field: "config.max_tokens"},
		{name: "rationale expression", doc: "name: x\ntype: ChainOfThought\nuse: QA\nrationale_field_type: \"__import__('os')\"\n", field: "rationale_field_type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mod, err := Decode([]byte(tc.doc))
			verr := requireValidationError(t, err)
			assert.Nil(t, mod)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, "x", verr.Module)
		})
	}
}

func TestDecodeDefaults(t *testing.T) {
	codeAct, ok := decode(t, "name: c\ntype: CodeAct\nuse: QA\ntools: [\"pkg.mod:tool_a\"]\n").(*CodeActSpec)
	require.True(t, ok)
	assert.Equal(t, DefaultCodeActMaxIters, codeAct.MaxIters)
	assert.Empty(t, codeAct.Interpreter)

	cot, ok := decode(t, "name: t\ntype: ChainOfThought\nuse: QA\n").(*ChainOfThoughtSpec)
	require.True(t, ok)
	assert.Equal(t, "str", cot.RationaleFieldType)
	assert.Nil(t, cot.RationaleField)
	assert.Nil(t, cot.Config)

	react, ok := decode(t, "name: r\ntype: ReAct\nuse: QA\ntools: []\n").(*ReActSpec)
	require.True(t, ok)
	assert.Nil(t, react.MaxIters)
	assert.NotNil(t, react.Tools)
	assert.Empty(t, react.Tools)

	predict, ok := decode(t, "name: p\ntype: Predict\nuse: QA\n").(*PredictSpec)
	require.True(t, ok)
	assert.True(t, predict.Config.IsZero())
	assert.Nil(t, predict.Callbacks)
}

func TestDecodeNormalizesStop(t *testing.T) {
	predict, ok := decode(t, "name: p\ntype: Predict\nuse: QA\nconfig:\n  stop: X\n").(*PredictSpec)
	require.True(t, ok)
	assert.Equal(t, StopList{"X"}, predict.Config.Stop)

	predict, ok = decode(t, "name: p\ntype: Predict\nuse: QA\nconfig:\n  stop: [X, Y]\n").(*PredictSpec)
	require.True(t, ok)
	assert.Equal(t, StopList{"X", "Y"}, predict.Config.Stop)
}

func TestEncodeRoundTrip(t *testing.T) {
	docs := []string{
		"name: p\ntype: Predict\nuse: QA\ncallbacks: [\"pkg.callbacks:log\"]\nconfig:\n  temperature: 0\n  max_tokens: 1\n  stop: X\n",
		"name: p2\ntype: Predict\nuse: QA\ncallbacks: []\n",
		"name: r\ntype: ReAct\nuse: QA\ntools: [\"pkg.mod:tool_a\", \"pkg.mod:tool_b\"]\nmax_iters: 0\n",
		"name: r2\ntype: ReAct\nuse: QA\ntools: []\n",
		"name: c\ntype: CodeAct\nuse: QA\ntools: [\"pkg.mod:tool_a\"]\ninterpreter: pkg.interp:python\n",
		"name: t\ntype: ChainOfThought\nuse: QA\nrationale_field: reasoning\nrationale_field_type: int\nconfig:\n  n: 3\n  mode: fast\n",
	}
	for _, doc := range docs {
		first := decode(t, doc)
		encoded, err := Encode(first)
		require.NoError(t, err)

		second, err := Decode(encoded)
		require.NoError(t, err, "re-decoding:\n%s", encoded)
		assert.Equal(t, first, second)

		again, err := Encode(second)
		require.NoError(t, err)
		assert.Equal(t, string(encoded), string(again))
	}
}

func TestEncodeRejectsInvalidSpec(t *testing.T) {
	_, err := Encode(&PredictSpec{Base: Base{Name: "p", Type: KindPredict, Use: "QA"}, Config: PredictConfig{Temperature: ptr(3.0)}})
	requireValidationError(t, err)

	_, err = Encode(&ReActSpec{Base: Base{Name: "r", Type: KindPredict, Use: "QA"}, Tools: []string{}})
	serr := requireSchemaError(t, err)
	assert.Equal(t, "type", serr.Field)

	_, err = Encode(nil)
	assert.Error(t, err)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("Retrieve"))
	requireSchemaError(t, err)
	assert.Len(t, Kinds(), 4)
}
