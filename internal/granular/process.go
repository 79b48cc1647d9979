package granular

import (
	"math"

	"github.com/bmisiak/ssstretch/dsp/interp"
)

// Process consumes inputs and renders outputs. The stretch ratio is implicit
// in the buffer lengths: len(inputs[ch])/len(outputs[ch]) input samples are
// consumed per output sample. Inputs and outputs must not alias.
//
// Shapes are trusted; the facade validates them before calling.
func (e *Engine) Process(inputs, outputs [][]float32) {
	if e.plan == nil || e.channels == 0 {
		return
	}
	if len(inputs) < e.channels || len(outputs) < e.channels {
		return
	}

	inLen := len(inputs[0])
	outLen := len(outputs[0])

	if outLen == 0 {
		e.feed(inputs, 0, inLen)
		return
	}

	rate := float64(inLen) / float64(outLen)

	fed := 0
	for j := 0; j < outLen; j++ {
		if e.frameOutNext == e.outCount {
			fed += e.fireFrame(inputs, fed, inLen)
			e.frameInNext += rate * float64(e.interval)
		}

		e.emit(outputs, j)
	}

	if fed < inLen {
		e.feed(inputs, fed, inLen-fed)
	}
}

// Seek feeds pre-roll input into the analysis history without producing
// output. playbackRate is the expected input-samples-per-output-sample of
// the upcoming stream; it sizes the hop used to prime the phase state so
// the first synthesized frame measures correct instantaneous frequencies.
func (e *Engine) Seek(inputs [][]float32, playbackRate float64) {
	if e.plan == nil || e.channels == 0 || len(inputs) < e.channels {
		return
	}

	e.feed(inputs, 0, len(inputs[0]))
	e.frameInNext = float64(e.histTotal)

	hop := int(math.Round(float64(e.interval) * playbackRate))
	if hop < 1 {
		hop = 1
	}
	if hop > e.fftSize/2 {
		hop = e.fftSize / 2
	}

	e.primeAnalysis(hop)
}

// Flush drains the processing tail into outputs. At most OutputLatency
// samples carry signal; any remaining output is zero-filled. Input history
// is padded with silence as frames drain.
func (e *Engine) Flush(outputs [][]float32) {
	if e.plan == nil || e.channels == 0 || len(outputs) < e.channels {
		return
	}

	outLen := len(outputs[0])

	limit := e.OutputLatency()
	if limit > outLen {
		limit = outLen
	}

	for j := 0; j < limit; j++ {
		if e.frameOutNext == e.outCount {
			want := int64(math.Round(e.frameInNext))
			e.feedZeros(int(want - e.histTotal))
			e.synthesizeFrame()
			e.frameOutNext += int64(e.interval)
			e.frameInNext += float64(e.interval)
		}

		e.emit(outputs, j)
	}

	for j := limit; j < outLen; j++ {
		for ch := 0; ch < e.channels; ch++ {
			outputs[ch][j] = 0
		}
	}
}

// fireFrame feeds input up to the frame's analysis position, synthesizes
// one frame, and returns the number of input samples consumed.
func (e *Engine) fireFrame(inputs [][]float32, fed, inLen int) int {
	want := int64(math.Round(e.frameInNext))

	need := int(want - e.histTotal)
	if need < 0 {
		need = 0
	}
	if need > inLen-fed {
		need = inLen - fed
	}

	e.feed(inputs, fed, need)
	e.synthesizeFrame()
	e.frameOutNext += int64(e.interval)

	return need
}

// synthesizeFrame analyzes the newest FFT block of history for every
// channel and overlap-adds the rendered frame at the current output
// position. A frame always analyzes the newest history so the ring never
// needs to retain more than one FFT block.
func (e *Engine) synthesizeFrame() {
	n := e.fftSize
	half := n / 2
	hop := float64(e.histTotal - e.prevFrameEnd)
	base := e.frameOutNext

	for ch := 0; ch < e.channels; ch++ {
		ring := e.history[ch]
		for i := 0; i < n; i++ {
			x := float64(ring[(e.histPos+i)%n])
			e.analysisSpectrum[i] = complex(x*e.windowCoeffs[i], 0)
		}

		if err := e.plan.Forward(e.analysisSpectrum, e.analysisSpectrum); err != nil {
			continue
		}

		for k := 0; k <= half; k++ {
			re := real(e.analysisSpectrum[k])
			im := imag(e.analysisSpectrum[k])
			e.magnitudes[k] = math.Hypot(re, im)
			e.phases[k] = math.Atan2(im, re)
		}

		prev := e.prevPhase[ch]
		if e.havePrevPhase && hop > 0 {
			for k := 0; k <= half; k++ {
				delta := e.phases[k] - prev[k] - e.omega[k]*hop
				e.frequencies[k] = e.omega[k] + wrapPhase(delta)/hop
			}
		} else {
			copy(e.frequencies, e.omega)
		}
		copy(prev, e.phases)

		if e.identity {
			copy(e.outMagnitudes, e.magnitudes)
			copy(e.outFrequencies, e.frequencies)
		} else {
			for k := 0; k <= half; k++ {
				lo := e.srcLow[k]
				t := e.srcFrac[k]
				e.outMagnitudes[k] = interp.Linear(t, e.magnitudes[lo], e.magnitudes[lo+1])

				f := interp.Linear(t, e.frequencies[lo], e.frequencies[lo+1])
				e.outFrequencies[k] = f*e.freqScale[k] + e.freqOffset[k]
			}
		}

		sum := e.sumPhase[ch]
		if e.haveSumPhase {
			hopOut := float64(e.interval)
			for k := 0; k <= half; k++ {
				sum[k] = wrapPhase(sum[k] + e.outFrequencies[k]*hopOut)
			}
		} else {
			for k := 0; k <= half; k++ {
				sum[k] = wrapPhase(e.phases[e.srcLow[k]] + e.jitter[k])
			}
		}

		for k := 0; k <= half; k++ {
			mag := e.outMagnitudes[k]
			e.synthesisSpectrum[k] = complex(mag*math.Cos(sum[k]), mag*math.Sin(sum[k]))
		}

		e.synthesisSpectrum[0] = complex(real(e.synthesisSpectrum[0]), 0)

		e.synthesisSpectrum[half] = complex(real(e.synthesisSpectrum[half]), 0)
		for k := 1; k < half; k++ {
			v := e.synthesisSpectrum[k]
			e.synthesisSpectrum[n-k] = complex(real(v), -imag(v))
		}

		if err := e.plan.Inverse(e.timeFrame, e.synthesisSpectrum); err != nil {
			continue
		}

		ola := e.ola[ch]
		for i := 0; i < n; i++ {
			slot := int((base + int64(i)) % int64(e.olaLen))
			ola[slot] += float32(real(e.timeFrame[i]) * e.windowCoeffs[i])
		}
	}

	e.havePrevPhase = true
	e.haveSumPhase = true
	e.prevFrameEnd = e.histTotal
}

// primeAnalysis analyzes the frame ending back samples before the newest
// history sample and stores its phases as the previous-frame state. Samples
// older than the history ring are taken as silence.
func (e *Engine) primeAnalysis(back int) {
	n := e.fftSize
	half := n / 2

	for ch := 0; ch < e.channels; ch++ {
		ring := e.history[ch]
		for i := 0; i < n; i++ {
			x := 0.0
			if idx := i - back; idx >= 0 {
				x = float64(ring[(e.histPos+idx)%n])
			}

			e.analysisSpectrum[i] = complex(x*e.windowCoeffs[i], 0)
		}

		if err := e.plan.Forward(e.analysisSpectrum, e.analysisSpectrum); err != nil {
			continue
		}

		prev := e.prevPhase[ch]
		for k := 0; k <= half; k++ {
			prev[k] = math.Atan2(imag(e.analysisSpectrum[k]), real(e.analysisSpectrum[k]))
		}
	}

	e.prevFrameEnd = e.histTotal - int64(back)
	e.havePrevPhase = true
	e.haveSumPhase = false
}

// emit pops one output sample per channel from the overlap-add ring.
func (e *Engine) emit(outputs [][]float32, j int) {
	slot := int(e.outCount % int64(e.olaLen))
	gain := e.invNorm[int(e.outCount%int64(e.interval))]

	for ch := 0; ch < e.channels; ch++ {
		v := float64(e.ola[ch][slot]) * gain
		e.ola[ch][slot] = 0
		outputs[ch][j] = float32(v)
	}

	e.outCount++
}

func (e *Engine) feed(inputs [][]float32, from, n int) {
	if n <= 0 {
		return
	}

	size := e.fftSize
	for ch := 0; ch < e.channels; ch++ {
		ring := e.history[ch]
		pos := e.histPos
		for _, x := range inputs[ch][from : from+n] {
			ring[pos] = x
			pos++
			if pos == size {
				pos = 0
			}
		}
	}

	e.histPos = (e.histPos + n) % size
	e.histTotal += int64(n)
}

func (e *Engine) feedZeros(n int) {
	if n <= 0 {
		return
	}

	size := e.fftSize
	for ch := 0; ch < e.channels; ch++ {
		ring := e.history[ch]
		pos := e.histPos
		for i := 0; i < n; i++ {
			ring[pos] = 0
			pos++
			if pos == size {
				pos = 0
			}
		}
	}

	e.histPos = (e.histPos + n) % size
	e.histTotal += int64(n)
}

// wrapPhase wraps x into (-pi, pi].
func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}
