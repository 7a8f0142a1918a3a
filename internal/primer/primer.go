package primer

import (
	"github.com/ActiveState/rtscope/internal/envstore"
	"github.com/ActiveState/rtscope/internal/output"
)

type Values struct {
	output output.Outputer
	env    envstore.Store
}

func New(output output.Outputer, env envstore.Store) *Values {
	return &Values{
		output: output,
		env:    env,
	}
}

type Outputer interface {
	Output() output.Outputer
}

type Enver interface {
	Env() envstore.Store
}

func (v *Values) Output() output.Outputer {
	return v.output
}

// Env is the environment that scoped runs mutate
func (v *Values) Env() envstore.Store {
	return v.env
}
