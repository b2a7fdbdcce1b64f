package strategy

import (
	"sort"

	"github.com/skyhaul/dronesim/core/factory"
	"github.com/skyhaul/dronesim/core/sim"
)

var registry = factory.NewRegistry[sim.Strategy]()

// Register adds a strategy factory under the given name.
func Register(name string, f factory.Factory[sim.Strategy]) error {
	return registry.Register(name, f)
}

// New builds the named strategy from its raw configuration.
func New(cfg factory.ModuleConfig) (sim.Strategy, error) {
	return registry.Create(cfg)
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := registry.Names()
	sort.Strings(names)
	return names
}

type batchConf struct {
	Picking string `json:"picking"`
}

type exhaustiveConf struct {
	Cutoff int `json:"cutoff"`
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(Register("roundrobin", func(map[string]any) (sim.Strategy, error) {
		return NewRoundRobin(), nil
	}))
	must(Register("lightest", func(map[string]any) (sim.Strategy, error) {
		return NewLightest(), nil
	}))
	must(Register("nearest", func(map[string]any) (sim.Strategy, error) {
		return NewNearest(), nil
	}))
	must(Register("combined", func(map[string]any) (sim.Strategy, error) {
		return NewCombined(), nil
	}))
	must(Register("batch", func(conf map[string]any) (sim.Strategy, error) {
		var c batchConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewBatch(PickKey(c.Picking)), nil
	}))
	must(Register("exhaustive", func(conf map[string]any) (sim.Strategy, error) {
		var c exhaustiveConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewExhaustive(c.Cutoff), nil
	}))
}
