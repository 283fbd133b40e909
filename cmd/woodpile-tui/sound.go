package main

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveNoise
)

// soundBoard проигрывает короткие сигналы. Без звуковой карты молчит.
type soundBoard struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
	rng     *rand.Rand
}

func newSoundBoard() *soundBoard {
	return &soundBoard{mixer: &beep.Mixer{}, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// init поднимает speaker. Ошибка не фатальна: играем без звука.
func (sb *soundBoard) init() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sb.mixer)
	sb.enabled = true
	return nil
}

func (sb *soundBoard) close() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.enabled {
		return
	}
	sb.mixer.Clear()
	speaker.Close()
	sb.enabled = false
}

func (sb *soundBoard) play(s beep.Streamer) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.enabled {
		return
	}
	// Mixer читается из горутины speaker
	speaker.Lock()
	sb.mixer.Add(s)
	speaker.Unlock()
}

// pick - глухой стук снятого полена
func (sb *soundBoard) pick() {
	sb.play(volume(tone(140, 120*time.Millisecond, waveSine, nil), 0.5))
}

// collapse - треск, тем длиннее, чем больше поленьев упало
func (sb *soundBoard) collapse(pieces int) {
	d := time.Duration(200+80*min(pieces, 5)) * time.Millisecond
	sb.play(volume(tone(0, d, waveNoise, sb.rng), 0.3))
}

// creature - тревожный двойной писк
func (sb *soundBoard) creature() {
	sb.play(beep.Seq(
		volume(tone(880, 90*time.Millisecond, waveSquare, nil), 0.2),
		beep.Silence(sampleRate.N(40*time.Millisecond)),
		volume(tone(1175, 90*time.Millisecond, waveSquare, nil), 0.2),
	))
}

// bite - низкое жужжание
func (sb *soundBoard) bite() {
	sb.play(volume(tone(90, 250*time.Millisecond, waveSquare, nil), 0.3))
}

// cleared - восходящее арпеджио
func (sb *soundBoard) cleared() {
	sb.play(beep.Seq(
		volume(tone(523, 100*time.Millisecond, waveSine, nil), 0.4),
		volume(tone(659, 100*time.Millisecond, waveSine, nil), 0.4),
		volume(tone(784, 160*time.Millisecond, waveSine, nil), 0.4),
	))
}

// oscillator генерирует одну волну заданной длины
type oscillator struct {
	freq     float64
	phase    float64
	position int
	duration int
	wave     waveType
	rng      *rand.Rand
}

func tone(freq float64, d time.Duration, wave waveType, rng *rand.Rand) beep.Streamer {
	return &oscillator{freq: freq, duration: sampleRate.N(d), wave: wave, rng: rng}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveNoise:
			val = o.rng.Float64()*2 - 1
		}

		// Линейное затухание к концу, без щелчка
		val *= 1 - float64(o.position)/float64(o.duration)

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// volume: math.Log2(0) - это -Inf, поэтому ноль - просто тишина
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
