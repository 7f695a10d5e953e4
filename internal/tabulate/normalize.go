package tabulate

// normalized is the categorical view of the input produced by normalize.
// codes index into the level sets; every row has a valid counter code and,
// when a grouper is present, a valid grouper code.
type normalized struct {
	counter       string
	grouper       string
	counterLevels *Levels
	grouperLevels *Levels
	counterCodes  []int
	grouperCodes  []int
	warnings      []Warning
}

func (n *normalized) grouped() bool { return n.grouperLevels != nil }

func normalize(t *Table, counter string, opt Options) (*normalized, error) {
	cvals, err := t.Column(counter)
	if err != nil {
		return nil, err
	}
	var gvals []Value
	if opt.Grouper != "" {
		if gvals, err = t.Column(opt.Grouper); err != nil {
			return nil, err
		}
	}

	n := &normalized{counter: counter, grouper: opt.Grouper}
	ccodes, clevels, binned := categorize(cvals, opt.CounterLevels, opt.binner())
	if binned {
		n.warnings = append(n.warnings, TypeCoercionWarning{Column: counter})
	}
	var gcodes []int
	var glevels *Levels
	if gvals != nil {
		// grouper levels are never binned; numeric groupers keep one level per value
		gcodes, glevels, _ = categorize(gvals, opt.GrouperLevels, nil)
		explicitMissing(gcodes, glevels)
	}

	if opt.ExplicitMissing {
		explicitMissing(ccodes, clevels)
	} else {
		keep := 0
		for i, c := range ccodes {
			if c < 0 {
				continue
			}
			ccodes[keep] = c
			if gcodes != nil {
				gcodes[keep] = gcodes[i]
			}
			keep++
		}
		if removed := len(ccodes) - keep; removed > 0 {
			n.warnings = append(n.warnings, RemovedMissingWarning{Column: counter, Count: removed})
		}
		ccodes = ccodes[:keep]
		if gcodes != nil {
			gcodes = gcodes[:keep]
		}
	}

	n.counterCodes, n.counterLevels = ccodes, clevels
	n.grouperCodes, n.grouperLevels = gcodes, glevels
	return n, nil
}

// categorize assigns each value a level code, -1 for missing. When declared
// is non-empty it fixes the level set; otherwise levels follow the column
// kind: binned intervals for numbers (when bin is non-nil), [true, false]
// for booleans, natural order for everything else.
func categorize(vals []Value, declared []string, bin Binner) (codes []int, levels *Levels, binned bool) {
	codes = make([]int, len(vals))
	labels := make([]string, len(vals))
	kind := kindOf(vals)

	switch {
	case kind == KindNumber && bin != nil:
		xs := make([]float64, 0, len(vals))
		for _, v := range vals {
			if x, ok := v.Float(); ok {
				xs = append(xs, x)
			}
		}
		assign, binLevels := bin.Bin(xs)
		k := 0
		for i, v := range vals {
			if v.IsMissing() {
				continue
			}
			labels[i] = binLevels[assign[k]]
			k++
		}
		levels = NewLevels(binLevels...)
		binned = true
	case kind == KindBool:
		for i, v := range vals {
			labels[i] = v.Label()
		}
		levels = NewLevels("true", "false")
	default:
		observed := make([]string, 0, len(vals))
		for i, v := range vals {
			if v.IsMissing() {
				continue
			}
			labels[i] = v.Label()
			observed = append(observed, labels[i])
		}
		levels = sortedLevels(observed)
	}

	if len(declared) > 0 {
		levels = NewLevels(declared...)
	}
	for i, v := range vals {
		codes[i] = -1
		if v.IsMissing() {
			continue
		}
		if idx, ok := levels.Index(labels[i]); ok {
			codes[i] = idx
		}
	}
	return codes, levels, binned
}

// explicitMissing recodes missing codes in place to the "Missing" level,
// adding that level only when a missing value exists.
func explicitMissing(codes []int, levels *Levels) {
	for i, c := range codes {
		if c < 0 {
			codes[i] = levels.Add(MissingLabel)
		}
	}
}
