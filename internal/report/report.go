// Package report computes summary statistics comparing a noisy render with
// its denoised result.
package report

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/gogpu/denoise"
)

// ChannelStats holds statistics for one channel.
// The residual is input minus output.
type ChannelStats struct {
	InputMean      float64
	InputStdDev    float64
	OutputMean     float64
	OutputStdDev   float64
	ResidualMean   float64
	ResidualStdDev float64

	// ResidualMedianAbs is the median of |input - output|.
	ResidualMedianAbs float64
}

// Reduction returns the ratio of output to input standard deviation.
// It is 1 when the input has no variance.
func (c ChannelStats) Reduction() float64 {
	if c.InputStdDev == 0 {
		return 1
	}
	return c.OutputStdDev / c.InputStdDev
}

// Summary describes the effect of denoising an image.
type Summary struct {
	Width, Height int
	Channels      []ChannelStats
}

// Summarize computes per-channel statistics of in, out and their residual.
// The images must have identical dimensions and channel counts.
func Summarize(in, out *denoise.Image) (Summary, error) {
	if in == nil || out == nil {
		return Summary{}, fmt.Errorf("%w: nil image", denoise.ErrInvalidParameter)
	}
	if !in.SameSize(out) || in.Channels() != out.Channels() {
		return Summary{}, fmt.Errorf("%w: input %v, output %v", denoise.ErrDimensionMismatch, in, out)
	}

	width, height := in.Bounds()
	channels := in.Channels()
	n := width * height

	src, dst := in.Data(), out.Data()
	inPlane := make(stats.Float64Data, n)
	outPlane := make(stats.Float64Data, n)
	resPlane := make(stats.Float64Data, n)
	absPlane := make(stats.Float64Data, n)

	s := Summary{Width: width, Height: height, Channels: make([]ChannelStats, channels)}
	for c := range channels {
		for i := range n {
			a, b := float64(src[i*channels+c]), float64(dst[i*channels+c])
			inPlane[i] = a
			outPlane[i] = b
			resPlane[i] = a - b
			absPlane[i] = math.Abs(a - b)
		}

		cs, err := channelStats(inPlane, outPlane, resPlane, absPlane)
		if err != nil {
			return Summary{}, fmt.Errorf("report: channel %d: %w", c, err)
		}
		s.Channels[c] = cs
	}

	return s, nil
}

func channelStats(in, out, res, abs stats.Float64Data) (ChannelStats, error) {
	var cs ChannelStats
	var err error

	if cs.InputMean, err = stats.Mean(in); err != nil {
		return cs, err
	}
	if cs.InputStdDev, err = stats.StandardDeviation(in); err != nil {
		return cs, err
	}
	if cs.OutputMean, err = stats.Mean(out); err != nil {
		return cs, err
	}
	if cs.OutputStdDev, err = stats.StandardDeviation(out); err != nil {
		return cs, err
	}
	if cs.ResidualMean, err = stats.Mean(res); err != nil {
		return cs, err
	}
	if cs.ResidualStdDev, err = stats.StandardDeviation(res); err != nil {
		return cs, err
	}
	if cs.ResidualMedianAbs, err = stats.Median(abs); err != nil {
		return cs, err
	}
	return cs, nil
}

// LogAttrs returns the summary as slog attributes, one group per channel.
func (s Summary) LogAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(s.Channels)+1)
	attrs = append(attrs, slog.String("image", fmt.Sprintf("%dx%d", s.Width, s.Height)))
	for c, cs := range s.Channels {
		attrs = append(attrs, slog.Group("c"+strconv.Itoa(c),
			slog.Float64("in_mean", cs.InputMean),
			slog.Float64("in_std", cs.InputStdDev),
			slog.Float64("out_mean", cs.OutputMean),
			slog.Float64("out_std", cs.OutputStdDev),
			slog.Float64("residual_mean", cs.ResidualMean),
			slog.Float64("residual_std", cs.ResidualStdDev),
			slog.Float64("residual_median_abs", cs.ResidualMedianAbs),
			slog.Float64("reduction", cs.Reduction()),
		))
	}
	return attrs
}
