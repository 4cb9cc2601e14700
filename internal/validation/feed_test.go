package validation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

func TestFeedDecoder_City(t *testing.T) {
	d := NewFeedDecoder(NewSchemaValidator(), contributionsSchema)

	feed, err := d.Decode([]byte(`{"city_id": "c1", "turn": 4, "contributions": [
		{"resource_type": "RE07", "doubled_amount": 4, "bucket": "flat_after", "source": "spell"}]}`))
	require.NoError(t, err)

	assert.False(t, feed.IsTurn)
	assert.Equal(t, 4, feed.Turn)
	require.Len(t, feed.Cities, 1)
	require.Len(t, feed.Cities[0].Contributions, 1)

	c := feed.Cities[0].Contributions[0]
	assert.Equal(t, domain.ResourceTypeID("RE07"), c.ResourceType)
	assert.Equal(t, domain.OverrideTo(domain.FlatAfterBonus), c.Override())
	assert.Equal(t, "spell", c.Source)
}

func TestFeedDecoder_Turn(t *testing.T) {
	d := NewFeedDecoder(NewSchemaValidator(), contributionsSchema)
	path := writeFile(t, t.TempDir(), "turn.json",
		`{"turn": 9, "cities": [{"city_id": "a", "contributions": []}, {"city_id": "b", "contributions": []}]}`)

	feed, err := d.DecodeFile(path)
	require.NoError(t, err)

	assert.True(t, feed.IsTurn)
	assert.Equal(t, 9, feed.Turn)
	assert.Len(t, feed.Cities, 2)
}

func TestFeedDecoder_Invalid(t *testing.T) {
	d := NewFeedDecoder(NewSchemaValidator(), contributionsSchema)

	_, err := d.Decode([]byte(`{"city_id": "c1", "contributions": [{"resource_type": "RE01", "doubled_amount": "7"}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = d.DecodeFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read feed")
}
