package system

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arena/prefabs"
)

const waveScriptTimeout = 100 * time.Millisecond

const wavePlanDispatchScript = `
__count = wave_plan(__wave, __base, __scaling, __cap)
`

// WaveScript is a compiled tengo script that decides wave sizes. The script
// must define wave_plan(wave, base, scaling, cap).
type WaveScript struct {
	name     string
	compiled *tengo.Compiled
}

// LoadWaveScript compiles a script from prefabs/scripts.
func LoadWaveScript(name string) (*WaveScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("wave: load script %s: %w", name, err)
	}
	return NewWaveScript(name, src)
}

func NewWaveScript(name string, src []byte) (*WaveScript, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte(wavePlanDispatchScript)...))
	_ = script.Add("__wave", 0)
	_ = script.Add("__base", 0.0)
	_ = script.Add("__scaling", 0.0)
	_ = script.Add("__cap", 0)
	_ = script.Add("__count", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("wave: compile script %s: %w", name, err)
	}
	return &WaveScript{name: name, compiled: compiled}, nil
}

func (s *WaveScript) Name() string {
	return s.name
}

// Count runs wave_plan for one wave.
func (s *WaveScript) Count(wave int, base, scaling float64, limit int) (int, error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("wave: script not compiled")
	}
	for name, value := range map[string]any{
		"__wave":    wave,
		"__base":    base,
		"__scaling": scaling,
		"__cap":     limit,
	} {
		if err := s.compiled.Set(name, value); err != nil {
			return 0, fmt.Errorf("wave: script %s set %s: %w", s.name, name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), waveScriptTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("wave: script %s run: %w", s.name, err)
	}

	switch v := s.compiled.Get("__count").Value().(type) {
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("wave: script %s returned %T, want int", s.name, v)
	}
}
