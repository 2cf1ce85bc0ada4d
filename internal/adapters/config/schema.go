package config

// File represents the structure of the gcx.yaml configuration file.
type File struct {
	Version   string        `yaml:"version"`
	Store     string        `yaml:"store"`
	Jobs      int           `yaml:"jobs"`
	Stages    []string      `yaml:"stages"`
	Complexes []ComplexDTO  `yaml:"complexes"`
	Rank      RankConfigDTO `yaml:"rank"`
}

// ComplexDTO selects one complex family and its grading ranges.
type ComplexDTO struct {
	Family     string   `yaml:"family"`
	EdgeParity string   `yaml:"edgeParity"`
	HairParity string   `yaml:"hairParity"`
	Vertices   RangeDTO `yaml:"vertices"`
	Loops      RangeDTO `yaml:"loops"`
	Hairs      RangeDTO `yaml:"hairs"`
	Operators  []string `yaml:"operators"`
}

// RangeDTO is an inclusive integer range.
type RangeDTO struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// RankConfigDTO configures the rank computation engine.
type RankConfigDTO struct {
	InProcessLimit int             `yaml:"inProcessLimit"`
	SolverTimeout  string          `yaml:"solverTimeout"`
	Solvers        []SolverDTO     `yaml:"solvers"`
}

// SolverDTO describes one rank backend.
type SolverDTO struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
	Modulus uint64   `yaml:"modulus"`
}
