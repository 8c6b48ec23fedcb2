package jxl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagecodecs/jpegxl-go/pkg/jxl"
)

// newDecoder creates a decoder or skips the test when no native library is
// linked into the test binary.
func newDecoder(t *testing.T) *jxl.Decoder {
	t.Helper()
	d, err := jxl.NewDecoder()
	if errors.Is(err, jxl.ErrNotBuilt) {
		t.Skip("native library not linked in")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newEncoder(t *testing.T) *jxl.Encoder {
	t.Helper()
	e, err := jxl.NewEncoder()
	if errors.Is(err, jxl.ErrNotBuilt) {
		t.Skip("native library not linked in")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// encodeTestImage compresses a small RGBA image and returns the codestream.
func encodeTestImage(t *testing.T, xsize, ysize uint32) []byte {
	t.Helper()
	e := newEncoder(t)

	info, err := jxl.NewBasicInfo()
	require.NoError(t, err)
	info.XSize = xsize
	info.YSize = ysize
	info.BitsPerSample = 8
	info.NumColorChannels = 3
	info.NumExtraChannels = 1
	info.AlphaBits = 8
	require.NoError(t, e.SetBasicInfo(info))

	srgb, err := jxl.SRGBColorEncoding(false)
	require.NoError(t, err)
	require.NoError(t, e.SetColorEncoding(srgb))

	format := jxl.PixelFormat{NumChannels: 4, DataType: jxl.TypeUint8, Endianness: jxl.NativeEndian}
	pixels := make([]byte, int(xsize)*int(ysize)*4)
	for i := range pixels {
		pixels[i] = byte(i * 7)
	}
	fs, err := e.NewFrameSettings(nil)
	require.NoError(t, err)
	require.NoError(t, fs.AddImageFrame(format, pixels))
	require.NoError(t, e.CloseInput())

	data, err := e.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, data)
	return data
}

func TestDecoderCloseIsIdempotent(t *testing.T) {
	d := newDecoder(t)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.SubscribeEvents(jxl.DecBasicInfo), jxl.ErrClosed)
	_, err := d.BasicInfo()
	assert.ErrorIs(t, err, jxl.ErrClosed)
}

func TestSetImageOutBufferBeforeBasicInfo(t *testing.T) {
	d := newDecoder(t)

	format := jxl.PixelFormat{NumChannels: 4, DataType: jxl.TypeUint8, Endianness: jxl.NativeEndian}
	err := d.SetImageOutBuffer(format, make([]byte, 64))
	require.Error(t, err, "buffer accepted before any image was parsed")
	var serr *jxl.DecoderStatusError
	require.ErrorAs(t, err, &serr)
	// The handle stays usable; only ProcessInput can make it terminal.
	assert.NoError(t, d.SubscribeEvents(jxl.DecBasicInfo))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const xsize, ysize = 4, 3
	data := encodeTestImage(t, xsize, ysize)

	sig, err := jxl.SignatureCheck(data)
	require.NoError(t, err)
	require.Contains(t, []jxl.Signature{jxl.SigCodestream, jxl.SigContainer}, sig)

	d := newDecoder(t)
	require.NoError(t, d.SubscribeEvents(jxl.DecBasicInfo|jxl.DecColorEncoding|jxl.DecFullImage))
	require.NoError(t, d.SetParallelRunner(jxl.PoolRunner(2)))
	require.NoError(t, d.SetInput(data))
	require.NoError(t, d.CloseInput())

	format := jxl.PixelFormat{NumChannels: 4, DataType: jxl.TypeUint8, Endianness: jxl.NativeEndian}
	var out []byte
	var sawColor, sawImage bool
	for i := 0; ; i++ {
		require.LessOrEqual(t, i, 100, "decoder did not reach success")
		st, err := d.ProcessInput()
		require.NoError(t, err)
		switch st {
		case jxl.DecBasicInfo:
			info, err := d.BasicInfo()
			require.NoError(t, err)
			assert.Equal(t, uint32(xsize), info.XSize)
			assert.Equal(t, uint32(ysize), info.YSize)
		case jxl.DecColorEncoding:
			icc, err := d.ICCProfile(jxl.ProfileOriginal)
			require.NoError(t, err)
			assert.NotEmpty(t, icc)
			sawColor = true
		case jxl.DecNeedImageOutBuffer:
			n, err := d.ImageOutBufferSize(format)
			require.NoError(t, err)
			require.Equal(t, xsize*ysize*4, n)
			out = make([]byte, n)
			require.NoError(t, d.SetImageOutBuffer(format, out))
		case jxl.DecFullImage:
			sawImage = true
		case jxl.DecSuccess:
			assert.True(t, sawColor, "color-encoding event not delivered")
			assert.True(t, sawImage, "full-image event not delivered")
			require.NotNil(t, out, "success without an output buffer request")
			return
		default:
			t.Fatalf("unexpected status %s", st)
		}
	}
}

func TestTruncatedStreamIsTerminal(t *testing.T) {
	data := encodeTestImage(t, 16, 16)
	if len(data) < 20 {
		t.Skipf("codestream too small to truncate meaningfully: %d bytes", len(data))
	}

	d := newDecoder(t)
	require.NoError(t, d.SubscribeEvents(jxl.DecBasicInfo|jxl.DecFullImage))
	require.NoError(t, d.SetInput(data[:len(data)/2]))
	require.NoError(t, d.CloseInput())

	format := jxl.PixelFormat{NumChannels: 4, DataType: jxl.TypeUint8, Endianness: jxl.NativeEndian}
	var lastErr error
	for i := 0; i < 100; i++ {
		st, err := d.ProcessInput()
		if err != nil {
			lastErr = err
			break
		}
		switch st {
		case jxl.DecNeedImageOutBuffer:
			n, err := d.ImageOutBufferSize(format)
			require.NoError(t, err)
			require.NoError(t, d.SetImageOutBuffer(format, make([]byte, n)))
		case jxl.DecSuccess:
			t.Fatal("truncated stream decoded successfully")
		}
	}
	require.Error(t, lastErr, "truncated closed stream never failed")

	// Terminal state: everything but Reset and Close refuses.
	_, err := d.ProcessInput()
	assert.ErrorIs(t, err, jxl.ErrFailed)
	_, err = d.BasicInfo()
	assert.ErrorIs(t, err, jxl.ErrFailed)
	require.NoError(t, d.Reset())
	assert.NoError(t, d.SubscribeEvents(jxl.DecBasicInfo))
}

func TestSignatureCheckRejectsGarbage(t *testing.T) {
	if !jxl.Available() {
		t.Skip("native library not linked in")
	}
	sig, err := jxl.SignatureCheck([]byte("definitely not an image"))
	require.NoError(t, err)
	assert.Equal(t, jxl.SigInvalid, sig)
}

func TestCountingManagerTracksNativeAllocations(t *testing.T) {
	var cm jxl.CountingManager
	e, err := jxl.NewEncoderWithManager(cm.Manager())
	if errors.Is(err, jxl.ErrNotBuilt) {
		t.Skip("native library not linked in")
	}
	require.NoError(t, err)
	assert.Positive(t, cm.Allocs(), "encoder creation went past the custom allocator")
	require.NoError(t, e.Close())
	assert.Positive(t, cm.Frees(), "encoder destruction freed nothing through the custom allocator")
}

func TestThreadPoolUnavailableWithoutBuildTag(t *testing.T) {
	if jxl.ThreadsAvailable() {
		t.Skip("libjxl_threads linked in")
	}
	_, err := jxl.NewThreadPool(0)
	assert.ErrorIs(t, err, jxl.ErrThreadsNotBuilt)
	_, err = jxl.NewResizablePool()
	assert.ErrorIs(t, err, jxl.ErrThreadsNotBuilt)
}

func TestThreadPoolRoundTrip(t *testing.T) {
	if !jxl.ThreadsAvailable() {
		t.Skip("libjxl_threads not linked in")
	}
	pool, err := jxl.NewThreadPool(2)
	require.NoError(t, err)
	defer pool.Close()

	data := encodeTestImage(t, 8, 8)
	d := newDecoder(t)
	require.NoError(t, d.SetThreadPool(pool))
	require.NoError(t, d.SubscribeEvents(jxl.DecFullImage))
	require.NoError(t, d.SetInput(data))
	require.NoError(t, d.CloseInput())

	format := jxl.PixelFormat{NumChannels: 4, DataType: jxl.TypeUint8, Endianness: jxl.NativeEndian}
	for i := 0; i < 100; i++ {
		st, err := d.ProcessInput()
		require.NoError(t, err)
		switch st {
		case jxl.DecNeedImageOutBuffer:
			n, err := d.ImageOutBufferSize(format)
			require.NoError(t, err)
			require.NoError(t, d.SetImageOutBuffer(format, make([]byte, n)))
		case jxl.DecSuccess:
			return
		}
	}
	t.Fatal("decoder did not finish")
}
