package course

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestInteractionKeyString(t *testing.T) {
	assert.Equal(t, "2_q0", InteractionKey{Block: 2, Question: 0}.String())
	assert.Equal(t, "0_q15", InteractionKey{Block: 0, Question: 15}.String())
}

func TestParseInteractionKey(t *testing.T) {
	key, err := ParseInteractionKey("3_q7")
	require.NoError(t, err)
	assert.Equal(t, InteractionKey{Block: 3, Question: 7}, key)

	for _, bad := range []string{"viewed_intro", "3-q7", "_q", "a_q1", "1_qx", ""} {
		_, err := ParseInteractionKey(bad)
		assert.Error(t, err, "key %q should not parse", bad)
	}
}

func TestDecodeInteractionsPreservesExtras(t *testing.T) {
	raw := datatypes.JSON(`{
		"1_q0": {"type":"questionnaire","correct":true,"questionIndex":0,"scoreResult":{"finalScore":10,"isCorrect":true}},
		"1_q1": "not an object",
		"viewed_intro": {"type":"media","at":"2024-01-01"}
	}`)

	m, err := DecodeInteractions(raw)
	require.NoError(t, err)

	// One valid answer, malformed answer dropped, non-question entry kept
	require.Len(t, m.Answers, 1)
	rec, ok := m.Get(InteractionKey{Block: 1, Question: 0})
	require.True(t, ok)
	assert.True(t, rec.Correct)
	assert.Equal(t, 10, rec.ScoreResult.FinalScore)

	encoded, err := m.Encode()
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &flat))
	assert.Contains(t, flat, "viewed_intro", "unrecognized entries survive a rewrite")
	assert.Contains(t, flat, "1_q0")
	assert.NotContains(t, flat, "1_q1", "malformed records are not resurrected")
}

func TestDecodeInteractionsEmpty(t *testing.T) {
	m, err := DecodeInteractions(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Answers)
}

func TestInteractionMapPutOverwrites(t *testing.T) {
	m := NewInteractionMap()
	key := InteractionKey{Block: 1, Question: 0}

	m.Put(key, InteractionRecord{Correct: false, Timestamp: time.Now()})
	m.Put(key, InteractionRecord{Correct: true, Timestamp: time.Now()})

	require.Len(t, m.Answers, 1)
	rec, ok := m.Get(key)
	require.True(t, ok)
	assert.True(t, rec.Correct)
}

func TestInteractionRecordRoundTrip(t *testing.T) {
	m := NewInteractionMap()
	key := InteractionKey{Block: 2, Question: 3}
	m.Put(key, InteractionRecord{
		Type:          "questionnaire",
		Correct:       true,
		QuestionIndex: 3,
		Timestamp:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ScoreResult:   ScoreResult{FinalScore: 10, IsCorrect: true},
	})

	encoded, err := m.Encode()
	require.NoError(t, err)

	decoded, err := DecodeInteractions(encoded)
	require.NoError(t, err)
	rec, ok := decoded.Get(key)
	require.True(t, ok)
	assert.Equal(t, 3, rec.QuestionIndex)
	assert.True(t, rec.ScoreResult.IsCorrect)
}

func TestCompletedBlocksRoundTrip(t *testing.T) {
	set := map[int]bool{3: true, 0: true, 1: true}

	encoded, err := EncodeCompletedBlocks(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,1,3]`, string(encoded))

	decoded, err := DecodeCompletedBlocks(encoded)
	require.NoError(t, err)
	assert.Equal(t, set, decoded)

	empty, err := DecodeCompletedBlocks(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
