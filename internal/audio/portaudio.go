package audio

import (
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/AutoCookies/sonarlock/internal/core"
)

// PortAudioBackend drives the real hardware: a single mono duplex stream,
// one callback invocation per buffer, each invocation forwarded verbatim to
// pipeline.Process. Grounded on original_source/src/audio/portaudio_backend.cpp,
// re-expressed against the Go binding's callback-based Stream API.
type PortAudioBackend struct{}

func NewPortAudioBackend() *PortAudioBackend {
	return &PortAudioBackend{}
}

func (b *PortAudioBackend) EnumerateDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("backend unavailable (code %d): %v", core.ErrBackendUnavailable, err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}

	out := make([]DeviceInfo, 0, len(devices))
	for i, d := range devices {
		out = append(out, DeviceInfo{
			ID:                i,
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			MaxOutputChannels: d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
		})
	}
	return out, nil
}

func (b *PortAudioBackend) RunSession(cfg core.Config, pipeline *core.Pipeline, shouldStop func() bool) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("backend unavailable (code %d): failed to initialize PortAudio: %v", core.ErrBackendUnavailable, err)
	}
	defer portaudio.Terminate()

	if err := pipeline.BeginSession(cfg); err != nil {
		return err
	}

	inDevice, err := portaudio.DefaultInputDevice()
	if err != nil {
		return fmt.Errorf("audio device unavailable (code %d): no default input device: %v", core.ErrAudioDeviceUnavailable, err)
	}
	outDevice, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return fmt.Errorf("audio device unavailable (code %d): no default output device: %v", core.ErrAudioDeviceUnavailable, err)
	}

	params := portaudio.LowLatencyParameters(inDevice, outDevice)
	params.Input.Channels = 1
	params.Output.Channels = 1
	params.SampleRate = cfg.Audio.SampleRateHz
	params.FramesPerBuffer = int(cfg.Audio.FramesPerBuffer)

	var frameOffset uint64
	totalFrames := uint64(cfg.Audio.SampleRateHz * cfg.Audio.DurationSeconds)

	callback := func(in, out []float32) {
		n := len(in)
		if totalFrames > 0 {
			if remaining := totalFrames - frameOffset; remaining < uint64(n) {
				n = int(remaining)
			}
		}
		if n <= 0 {
			for i := range out {
				out[i] = 0
			}
			return
		}

		input := make([]float64, n)
		output := make([]float64, n)
		for i := 0; i < n; i++ {
			input[i] = float64(in[i])
		}
		pipeline.Process(input, output, frameOffset)
		for i := 0; i < n; i++ {
			out[i] = float32(output[i])
		}
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		frameOffset += uint64(n)
	}

	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return fmt.Errorf("stream failure (code %d): %v", core.ErrStreamFailure, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("stream failure (code %d): failed to start stream: %v", core.ErrStreamFailure, err)
	}
	defer stream.Stop()

	for {
		if totalFrames > 0 && frameOffset >= totalFrames {
			return nil
		}
		if shouldStop != nil && shouldStop() {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
}
