package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The decoder discriminants are part of the native wire contract; abicheck.go
// pins them against the headers in cgo builds, this keeps the pure-Go
// declarations honest everywhere else.
func TestDecoderStatusDiscriminants(t *testing.T) {
	assert.Equal(t, DecoderStatus(6), DecJPEGNeedMoreOutput)
	assert.Equal(t, DecoderStatus(7), DecBoxNeedMoreOutput)
	assert.Equal(t, DecoderStatus(0x2000), DecJPEGReconstruction)
	assert.Equal(t, DecoderStatus(0x40), DecBasicInfo)
	assert.Equal(t, DecoderStatus(0x1000), DecFullImage)
}

// Every informational status doubles as a SubscribeEvents mask bit, so each
// must be a single, distinct power of two.
func TestSubscribableEventsAreDistinctBits(t *testing.T) {
	events := []DecoderStatus{
		DecBasicInfo,
		DecColorEncoding,
		DecPreviewImage,
		DecFrame,
		DecFullImage,
		DecJPEGReconstruction,
		DecBox,
		DecFrameProgression,
	}
	var mask DecoderStatus
	for _, e := range events {
		assert.Zerof(t, e&(e-1), "event %s (%#x) is not a single bit", e, int32(e))
		assert.Zerof(t, mask&e, "event %s (%#x) overlaps an earlier event", e, int32(e))
		mask |= e
	}
}

func TestDecoderStatusString(t *testing.T) {
	assert.Equal(t, "jpeg-need-more-output", DecJPEGNeedMoreOutput.String())
	assert.Equal(t, "box-need-more-output", DecBoxNeedMoreOutput.String())
	assert.Equal(t, "jpeg-reconstruction", DecJPEGReconstruction.String())
	assert.Equal(t, "unknown", DecoderStatus(0x123456).String())
}
