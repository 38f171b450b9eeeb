package policy

import (
	"fmt"

	"github.com/dshills/gochunk/internal/config"
	"github.com/dshills/gochunk/pkg/types"
)

// FromConfig builds the policy variant named by cfg.Kind.
// Pattern policies built from configuration always use size mode.
func FromConfig[T types.Number](cfg config.PolicyConfig) (BoundaryPolicy[T], error) {
	switch Kind(cfg.Kind) {
	case KindPattern:
		return build[T](NewPatternSize[T](cfg.Size))
	case KindVariance:
		return build[T](NewVariance[T](cfg.Threshold))
	case KindEntropy:
		return build[T](NewEntropy[T](cfg.Threshold))
	case KindMultiCriteria:
		return build[T](NewMultiCriteria[T](cfg.MinSize, cfg.SimilarityThreshold))
	case KindDynamicThreshold:
		return build[T](NewDynamicThreshold[T](cfg.Threshold, cfg.Decay, cfg.MinThreshold))
	case KindSimilarity:
		return build[T](NewSimilarity[T](cfg.Threshold))
	default:
		return nil, types.NewConfigError("policy kind", cfg.Kind, types.ErrUnknownPolicy)
	}
}

// FromConfigs builds one policy per entry, in order
func FromConfigs[T types.Number](cfgs []config.PolicyConfig) ([]Policy[T], error) {
	policies := make([]Policy[T], 0, len(cfgs))
	for i, c := range cfgs {
		p, err := FromConfig[T](c)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// build converts a constructor result to the interface without leaking a
// typed nil on error
func build[T any, P BoundaryPolicy[T]](p P, err error) (BoundaryPolicy[T], error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
