package cfg

// MachineConfig describes the target machine and the tool codes written
// into the generated program.
type MachineConfig struct {
	Number     int
	LinearTool int
	ShapedTool int
}

// NewMachine returns a config for the given machine number with the default tools.
func NewMachine(number int) MachineConfig {
	return MachineConfig{
		Number:     number,
		LinearTool: DefaultLinearTool,
		ShapedTool: DefaultShapedTool,
	}
}

// DefaultMachine is machine 130, a standard cutting table.
func DefaultMachine() MachineConfig {
	return NewMachine(130)
}

// IsCuttingTable reports whether the machine number is in the cutting table range 100-199.
func (m MachineConfig) IsCuttingTable() bool {
	return m.Number >= 100 && m.Number < 200
}

// IsLaminated reports whether the machine number belongs to a laminated glass line.
func (m MachineConfig) IsLaminated() bool {
	return m.Number >= 200
}
