package scenario

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/pkg/domain"
)

// FireRecord reports one callback invocation to the scenario's consumer.
type FireRecord struct {
	Step  int
	Scope string
	Group string
	New   any
	Old   any
}

// Execution is a scenario instantiated into a live engine. Build it once,
// then Play the script; the engine stays inspectable afterwards (the CLI's
// serve command hands it to the debug HTTP server).
type Execution struct {
	Engine *sluice.Engine

	sc     *Scenario
	flags  map[string]bool
	values map[string]any
	step   int
	logger *slog.Logger
}

// Build constructs the scope tree, gates and bindings described by the
// scenario. Engine options (hooks, store) are passed through. onFire is
// invoked synchronously for every binding callback; step -1 marks firings
// of the initial digest, before any script step ran.
func (sc *Scenario) Build(logger *slog.Logger, onFire func(FireRecord), opts ...sluice.Option) (*Execution, error) {
	if logger == nil {
		logger = slog.Default()
	}

	x := &Execution{
		sc:     sc,
		step:   -1,
		logger: logger,
		// Flags and values are shared mutable state: gate predicates and
		// binding expressions close over them, the script mutates them.
		flags:  make(map[string]bool, len(sc.Flags)),
		values: make(map[string]any, len(sc.Values)),
	}
	for k, v := range sc.Flags {
		x.flags[k] = v
	}
	for k, v := range sc.Values {
		x.values[k] = v
	}

	x.Engine = sluice.New(append([]sluice.Option{sluice.WithLogger(logger)}, opts...)...)

	scopes := map[string]*sluice.Scope{}
	for i, spec := range sc.Scopes {
		var target *sluice.Scope
		if i == 0 {
			target = x.Engine.Root()
		} else {
			target = scopes[spec.Parent].NewChild()
		}
		scopes[spec.ID] = target

		if spec.Gate != "" {
			flag := spec.Gate
			target.Gate(func() bool { return x.flags[flag] }, nil)
		}

		for _, b := range spec.Bindings {
			key := b.Key
			group := b.Group
			mode := domain.EqualityMode(b.Mode)
			if b.Mode == "" {
				mode = domain.EqualityIdentity
			}
			scopeID := spec.ID
			target.Watch(
				func(*sluice.Scope) any { return x.values[key] },
				func(newV, oldV any, _ *sluice.Scope) {
					if onFire != nil {
						onFire(FireRecord{Step: x.step, Scope: scopeID, Group: group, New: newV, Old: oldV})
					}
				},
				mode, group,
			)
		}
	}
	return x, nil
}

// Play runs the initial digest and then every script step: mutations first,
// one full digest after.
func (x *Execution) Play() error {
	x.step = -1
	if _, err := x.Engine.Digest(); err != nil {
		return fmt.Errorf("initial digest: %w", err)
	}

	for i, st := range x.sc.Script {
		x.step = i
		for k, v := range st.Set {
			x.values[k] = v
		}
		for _, f := range st.Open {
			x.flags[f] = true
		}
		for _, f := range st.Close {
			x.flags[f] = false
		}

		x.logger.Debug("scenario step", "step", i, "set", len(st.Set), "open", st.Open, "close", st.Close)
		if _, err := x.Engine.Digest(); err != nil {
			return fmt.Errorf("step %d digest: %w", i, err)
		}
	}
	return nil
}

// Run is the convenience path used by tests and the run command: build with
// defaults and play to completion.
func (sc *Scenario) Run(logger *slog.Logger, onFire func(FireRecord)) error {
	x, err := sc.Build(logger, onFire)
	if err != nil {
		return err
	}
	return x.Play()
}
