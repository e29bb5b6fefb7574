package tmpltbank

import (
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/executables"
)

// Option names of the linkage contract.
const (
	optLinkToMatchedFilter = "tmpltbank-link-to-matchedfilter"
	optLinkToTmpltbank     = "matchedfilter-link-to-tmpltbank"
	optTmpltbankCompat     = "tmpltbank-compatibility-mode"
	optMatchedFilterCompat = "matchedfilter-compatibility-mode"
)

// Linkage is what the template bank and matched-filter stages declare about
// aligning their jobs. Each side declares independently; Validate checks
// that the declarations agree.
type Linkage struct {
	TmpltbankLinked     bool
	MatchedFilterLinked bool
	TmpltbankCompat     bool
	MatchedFilterCompat bool
}

// ResolveLinkage reads both sides' declarations. All four options are
// presence flags.
func ResolveLinkage(cfg *config.Resolver, tags []string) Linkage {
	return Linkage{
		TmpltbankLinked:     cfg.HasTagged(executables.StageTemplateBank, optLinkToMatchedFilter, tags),
		MatchedFilterLinked: cfg.HasTagged(executables.StageMatchedFilter, optLinkToTmpltbank, tags),
		TmpltbankCompat:     cfg.HasTagged(executables.StageTemplateBank, optTmpltbankCompat, tags),
		MatchedFilterCompat: cfg.HasTagged(executables.StageMatchedFilter, optMatchedFilterCompat, tags),
	}
}

// Validate returns warnings for declarations only one side makes, and an
// ErrInvalidConfiguration error when compatibility mode is requested
// without linkage or without the matched-filter stage requesting it too.
func (l Linkage) Validate() (warnings []string, err error) {
	if l.TmpltbankLinked && !l.MatchedFilterLinked {
		warnings = append(warnings, "["+executables.StageTemplateBank+"] "+optLinkToMatchedFilter+
			" is set but ["+executables.StageMatchedFilter+"] "+optLinkToTmpltbank+" is not")
	}
	if l.MatchedFilterLinked && !l.TmpltbankLinked {
		warnings = append(warnings, "["+executables.StageMatchedFilter+"] "+optLinkToTmpltbank+
			" is set but ["+executables.StageTemplateBank+"] "+optLinkToMatchedFilter+" is not")
	}

	if !l.TmpltbankCompat {
		return warnings, nil
	}
	if !l.TmpltbankLinked {
		return warnings, config.Invalidf("%s requires %s to be set", optTmpltbankCompat, optLinkToMatchedFilter)
	}
	if !l.MatchedFilterCompat {
		return warnings, config.Invalidf("compatibility mode must be set in both [%s] and [%s]",
			executables.StageTemplateBank, executables.StageMatchedFilter)
	}
	return warnings, nil
}

// Active reports whether template bank jobs are aligned with matched-filter
// jobs.
func (l Linkage) Active() bool {
	return l.TmpltbankLinked
}

// Compatibility reports whether jobs use the legacy alignment. It is only
// meaningful for a linkage that passed Validate.
func (l Linkage) Compatibility() bool {
	return l.TmpltbankCompat && l.TmpltbankLinked && l.MatchedFilterCompat
}
