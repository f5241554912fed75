package scripted

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		evaluator Evaluator
		wantErr   error
	}{
		{
			name:      "no source",
			evaluator: Evaluator{},
			wantErr:   ErrNoSource,
		},
		{
			name:      "both code and URI",
			evaluator: Evaluator{Code: `1`, URI: "file://x.risor"},
			wantErr:   ErrBothCodeAndURI,
		},
		{
			name:      "negative timeout",
			evaluator: Evaluator{Code: `1`, Timeout: -time.Second},
			wantErr:   ErrNegativeTimeout,
		},
		{
			name:      "valid inline code",
			evaluator: Evaluator{Code: `1 + 2`},
		},
	}

	for i := range tests {
		tt := &tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := tt.evaluator.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEvaluator_CompileFailure(t *testing.T) {
	t.Parallel()

	ev := &Evaluator{Code: `def broken(`}
	err := ev.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompilationFailed)

	// compilation failure is sticky
	_, err = ev.GetCompiledEvaluator()
	assert.ErrorIs(t, err, ErrCompilationFailed)
}

func TestEvaluator_GetCompiledEvaluator(t *testing.T) {
	t.Parallel()

	ev := &Evaluator{Code: `"hello"`}
	compiled, err := ev.GetCompiledEvaluator()
	require.NoError(t, err)
	assert.NotNil(t, compiled)

	// repeated calls return the same compiled script
	again, err := ev.GetCompiledEvaluator()
	require.NoError(t, err)
	assert.Equal(t, compiled, again)
}

func TestEvaluator_GetTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultEvalTimeout, (&Evaluator{}).GetTimeout())
	assert.Equal(t, time.Second, (&Evaluator{Timeout: time.Second}).GetTimeout())
}

func TestEvaluator_String(t *testing.T) {
	t.Parallel()

	var nilEv *Evaluator
	assert.Equal(t, "Risor(nil)", nilEv.String())
	assert.Contains(t, (&Evaluator{Code: `1 + 2`}).String(), "code=5 chars")
	assert.Contains(t, (&Evaluator{URI: "file://s.risor"}).String(), "uri=file://s.risor")
}
