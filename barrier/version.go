package barrier

// Version information for the Pure-Go GC barrier runtime.
const (
	// Version is the current version of the barrier runtime.
	Version = "0.1.0"

	// MinGoVersion is the oldest Go release the runtime supports; the
	// decorator dispatch relies on generics.
	MinGoVersion = "1.21"
)

// Info provides runtime information about the barrier layer.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Strategy is the name of the installed barrier strategy.
	Strategy string

	// Kind is the installed strategy's family tag.
	Kind Kind

	// Stubbed indicates whether the strategy carries a stub assembler.
	Stubbed bool
}

// GetInfo returns information about the runtime's installed strategy.
//
// Example:
//
//	info := rt.GetInfo()
//	fmt.Printf("barrier runtime %s (%s)\n", info.Version, info.Strategy)
func (rt *Runtime) GetInfo() Info {
	bs := rt.Active()
	return Info{
		Version:  Version,
		Strategy: bs.Name(),
		Kind:     bs.Kind(),
		Stubbed:  bs.Assembler() != nil,
	}
}
