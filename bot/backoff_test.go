package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffMalformedSchedule(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 30 * time.Second}

	assert.Equal(2*time.Second, b.nextMalformed())
	assert.Equal(30*time.Second, b.nextMalformed())
	assert.Equal(60*time.Second, b.nextMalformed())
	assert.Equal(300*time.Second, b.nextMalformed())
	// Stays pinned at the cap.
	assert.Equal(300*time.Second, b.nextMalformed())
}

func TestBackoffGenericSchedule(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 30 * time.Second}

	assert.Equal(30*time.Second, b.nextGeneric())
	assert.Equal(60*time.Second, b.nextGeneric())
	assert.Equal(300*time.Second, b.nextGeneric())
	assert.Equal(300*time.Second, b.nextGeneric())
}

func TestBackoffGenericConfigurableBase(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 5 * time.Second}

	assert.Equal(5*time.Second, b.nextGeneric())
	assert.Equal(10*time.Second, b.nextGeneric())
	assert.Equal(300*time.Second, b.nextGeneric())
}

func TestBackoffGenericResetsMalformed(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 30 * time.Second}

	b.nextMalformed()
	b.nextMalformed()
	assert.Equal(30*time.Second, b.nextGeneric())
	// Generic failure starts the malformed schedule over.
	assert.Equal(2*time.Second, b.nextMalformed())
}

func TestBackoffMalformedKeepsGeneric(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 30 * time.Second}

	assert.Equal(30*time.Second, b.nextGeneric())
	b.nextMalformed()
	b.nextMalformed()
	// The generic counter survives malformed failures.
	assert.Equal(60*time.Second, b.nextGeneric())
}

func TestBackoffSessionReset(t *testing.T) {
	assert := assert.New(t)
	b := backoff{base: 30 * time.Second}

	b.nextGeneric()
	b.nextGeneric()
	b.nextMalformed()

	// A short session keeps the counters.
	b.observeSession(5 * time.Second)
	assert.Equal(30*time.Second, b.nextMalformed())

	// A healthy session clears everything.
	b.observeSession(time.Minute)
	assert.Equal(2*time.Second, b.nextMalformed())
	assert.Equal(30*time.Second, b.nextGeneric())
}
