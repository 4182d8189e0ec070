package password

import "github.com/5w1tchy/pwstrength/internal/config"

type Params struct {
	Memory      uint32 // kibibytes
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams is ~128MB, t=3.
func DefaultParams() Params {
	return Params{
		Memory:      131072, // 128 MiB
		Iterations:  3,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ParamsFromConfig overrides cost settings from config; salt/key sizes stay fixed.
func ParamsFromConfig(c config.Argon2) Params {
	p := DefaultParams()
	if c.Memory > 0 {
		p.Memory = c.Memory
	}
	if c.Iterations > 0 {
		p.Iterations = c.Iterations
	}
	if c.Parallelism > 0 {
		p.Parallelism = c.Parallelism
	}
	return p
}
