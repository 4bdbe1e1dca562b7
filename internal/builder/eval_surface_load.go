package builder

import (
	"errors"

	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/hcl"
)

// surfaceLoadArgs are the arguments of a surface_load block. The
// magnitude is a dead load per floor area, given positive and applied
// downward by preprocessing.
type surfaceLoadArgs struct {
	Magnitude float64 `osmg:"magnitude"`
}

func (bl *Builder) evalSurfaceLoad(st *state, blk *config.Block) error {
	levels, rest, err := decodeLevels(st, blk)
	if err != nil {
		return err
	}
	var args surfaceLoadArgs
	if err := hcl.DecodeArgs(rest, st.evalContext(), &args); err != nil {
		return err
	}
	if args.Magnitude < 0 {
		return errors.New("the surface load magnitude is given positive, it acts downward")
	}
	if err := st.b.SetActiveLevels(levels); err != nil {
		return err
	}
	st.b.AssignSurfaceDL(args.Magnitude)
	return nil
}
