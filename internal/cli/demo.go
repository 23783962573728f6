package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kolkov/gcbarrier/barrier"
	"github.com/kolkov/gcbarrier/internal/config"
)

// NewDemoCommand creates the demo command: run a scenario file through the
// barrier runtime.
func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <scenario.yaml>",
		Short: "Run a copy scenario through the barrier runtime",
		Long: `Run a copy scenario through the barrier runtime.

The scenario declares the strategy, a type hierarchy, reference arrays and
decorated copies. Each copy is executed in order; failures are reported with
the index the copy stopped at and the number of committed slots.

Example:
  gcbarrier demo scenarios/checked.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}
			return runScenario(cmd.OutOrStdout(), s)
		},
	}
	return cmd
}

// runScenario executes one parsed scenario against a fresh runtime.
func runScenario(out io.Writer, s *config.Scenario) error {
	var bs barrier.Set
	switch s.Strategy {
	case config.StrategyCardTable:
		bs = barrier.NewCardTable()
	default:
		bs = barrier.NewEpsilon()
	}

	rt := barrier.NewRuntime()
	rt.Initialize(bs, "main")
	rt.StubsInit()

	info := rt.GetInfo()
	fmt.Fprintf(out, "strategy: %s (stubs: %v)\n", info.Strategy, info.Stubbed)

	types := make(map[string]*barrier.Klass, len(s.Types))
	for _, td := range s.Types {
		types[td.Name] = barrier.NewKlass(td.Name, types[td.Super])
	}

	arrays := make(map[string]*barrier.ObjArray, len(s.Arrays))
	defs := make(map[string]config.ArrayDef, len(s.Arrays))
	for _, ad := range s.Arrays {
		arr := barrier.NewObjArray(types[ad.Element], ad.Len())
		for i, el := range ad.Elements {
			if el != "" {
				arr.Set(i, barrier.NewObject(types[el]))
			}
		}
		arrays[ad.Name] = arr
		defs[ad.Name] = ad
	}

	for i, cd := range s.Copies {
		n := cd.EffectiveCount(defs[cd.Src], defs[cd.Dst])
		src := barrier.ViewOf(arrays[cd.Src], cd.SrcFrom)
		dst := barrier.ViewOf(arrays[cd.Dst], cd.DstFrom)

		err := runCopy(rt, cd.Decorators, src, dst, n)
		if err != nil {
			fmt.Fprintf(out, "copy %d (%s, %s -> %s, n=%d): FAILED after %d slots: %v\n",
				i, cd.Decorators, cd.Src, cd.Dst, n, committedSlots(err), err)
			continue
		}
		fmt.Fprintf(out, "copy %d (%s, %s -> %s, n=%d): ok\n",
			i, cd.Decorators, cd.Src, cd.Dst, n)
	}

	if ct, ok := bs.(interface{ DirtyCards() int }); ok {
		fmt.Fprintf(out, "dirty cards: %d\n", ct.DirtyCards())
	}
	return nil
}

// runCopy maps the scenario's decorator name onto the compile-time set.
func runCopy(rt *barrier.Runtime, decorators string, src, dst barrier.ArrayView, n int) error {
	switch decorators {
	case config.DecoratorUnchecked:
		return barrier.Copy[barrier.Unchecked](rt, src, dst, n)
	case config.DecoratorNullChecked:
		return barrier.Copy[barrier.NullChecked](rt, src, dst, n)
	case config.DecoratorCastChecked:
		return barrier.Copy[barrier.CheckCast](rt, src, dst, n)
	case config.DecoratorFullyChecked:
		return barrier.Copy[barrier.FullyChecked](rt, src, dst, n)
	default:
		return fmt.Errorf("unknown decorators %q", decorators)
	}
}

// committedSlots extracts how many leading slots a failed copy committed.
func committedSlots(err error) int {
	switch e := err.(type) {
	case *barrier.NullStoreError:
		return e.Index
	case *barrier.ArrayStoreError:
		return e.Index
	default:
		return 0
	}
}
