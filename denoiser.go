package denoise

// Denoiser produces a denoised copy of a BufferSet's color image.
//
// CrossBilateral is the built-in implementation. Other backends, such as a
// learned denoiser bound to a device handle, implement Denoiser and are
// passed to callers explicitly instead of being registered globally.
type Denoiser interface {
	Denoise(set BufferSet) (*Image, error)
}

// DenoiserFunc adapts a function to the Denoiser interface.
type DenoiserFunc func(set BufferSet) (*Image, error)

// Denoise calls f(set).
func (f DenoiserFunc) Denoise(set BufferSet) (*Image, error) {
	return f(set)
}

var _ Denoiser = (*CrossBilateral)(nil)
