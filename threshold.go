package cryptoconditions

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

// maxThresholdMembers bounds the member count of a single threshold
// composite.
const maxThresholdMembers = 65535

// thresholdMember is one weighted entry: either a fully-known
// subfulfillment or an unfulfilled subcondition.
type thresholdMember struct {
	weight      uint32
	fulfillment Fulfillment
	condition   *Condition
}

// ThresholdSha256 is the weighted-M-of-N composite: the condition
// commits to a multiset of weighted subconditions and a threshold, and
// is satisfied by any subset of subfulfillments whose weights reach the
// threshold.
type ThresholdSha256 struct {
	threshold uint32
	members   []thresholdMember
}

// NewThresholdSha256 returns an empty composite with the given threshold.
func NewThresholdSha256(threshold uint32) *ThresholdSha256 {
	return &ThresholdSha256{threshold: threshold}
}

// SetThreshold sets the weight sum subfulfillments must reach.
func (f *ThresholdSha256) SetThreshold(threshold uint32) {
	f.threshold = threshold
}

// Threshold returns the committed threshold.
func (f *ThresholdSha256) Threshold() uint32 {
	return f.threshold
}

// AddSubfulfillment adds a fully-known member with the given weight.
func (f *ThresholdSha256) AddSubfulfillment(sub Fulfillment, weight uint32) {
	f.members = append(f.members, thresholdMember{weight: weight, fulfillment: sub})
}

// AddSubcondition adds an unfulfilled member with the given weight.
func (f *ThresholdSha256) AddSubcondition(sub *Condition, weight uint32) {
	f.members = append(f.members, thresholdMember{weight: weight, condition: sub})
}

// memberCondition returns the member's condition, deriving it from the
// subfulfillment when one is present.
func (m *thresholdMember) memberCondition() (*Condition, error) {
	if m.fulfillment != nil {
		return m.fulfillment.Condition()
	}
	if m.condition != nil {
		return m.condition, nil
	}
	return nil, fmt.Errorf("%w: empty threshold member", ErrMissingData)
}

// TypeID returns TypeThresholdSha256.
func (f *ThresholdSha256) TypeID() uint16 {
	return TypeThresholdSha256
}

// Bitmask returns the threshold features plus the union of all member
// features.
func (f *ThresholdSha256) Bitmask() uint32 {
	mask := FeatureSha256 | FeatureThreshold
	for i := range f.members {
		m := &f.members[i]
		if m.fulfillment != nil {
			mask |= m.fulfillment.Bitmask()
		} else if m.condition != nil {
			mask |= m.condition.Bitmask
		}
	}
	return mask
}

// Condition derives the threshold condition.
func (f *ThresholdSha256) Condition() (*Condition, error) {
	return deriveCondition(f)
}

// Validate checks that the present subfulfillments carry enough weight
// and that every one of them validates against the message.
func (f *ThresholdSha256) Validate(message []byte) error {
	var fulfilled uint64
	for i := range f.members {
		if f.members[i].fulfillment != nil {
			fulfilled += uint64(f.members[i].weight)
		}
	}
	if fulfilled < uint64(f.threshold) {
		return fmt.Errorf("%w: fulfilled weight %d of %d", ErrThresholdNotMet, fulfilled, f.threshold)
	}
	for i := range f.members {
		if f.members[i].fulfillment == nil {
			continue
		}
		if err := f.members[i].fulfillment.Validate(message); err != nil {
			return fmt.Errorf("subfulfillment %d: %w", i, err)
		}
	}
	return nil
}

func (f *ThresholdSha256) fingerprint() ([]byte, error) {
	return sha256Fingerprint(f)
}

// writeHashPayload commits to the threshold and the canonically ordered
// (weight, condition) pairs. The ordering depends only on the multiset
// of members, never on insertion order.
func (f *ThresholdSha256) writeHashPayload(w oer.Writer) error {
	if len(f.members) == 0 {
		return fmt.Errorf("%w: threshold requires subconditions", ErrMissingData)
	}
	pairs := make([][]byte, 0, len(f.members))
	for i := range f.members {
		cond, err := f.members[i].memberCondition()
		if err != nil {
			return err
		}
		pw := oer.NewWriter()
		pw.WriteVarUInt(uint64(f.members[i].weight))
		cond.writeBinary(pw)
		pairs = append(pairs, pw.Bytes())
	}
	sortBuffers(pairs)
	w.WriteUInt32(f.threshold)
	w.WriteVarUInt(uint64(len(f.members)))
	for _, p := range pairs {
		w.Write(p)
	}
	return nil
}

// writePayload reveals the smallest covering set of subfulfillments and
// downgrades every other member to its condition.
func (f *ThresholdSha256) writePayload(w oer.Writer) error {
	if len(f.members) == 0 {
		return fmt.Errorf("%w: threshold requires subconditions", ErrMissingData)
	}
	type memberBytes struct {
		weight    uint32
		condition []byte
		// nil when the member holds no fulfillment
		fulfillment []byte
	}
	encoded := make([]memberBytes, 0, len(f.members))
	for i := range f.members {
		m := &f.members[i]
		cond, err := m.memberCondition()
		if err != nil {
			return err
		}
		mb := memberBytes{weight: m.weight, condition: cond.Binary()}
		if m.fulfillment != nil {
			mb.fulfillment, err = FulfillmentBinary(m.fulfillment)
			if err != nil {
				return err
			}
		}
		encoded = append(encoded, mb)
	}

	// Size of each member serialized as a condition, and the delta it
	// would add when revealed instead.
	asCondition := make([]int, len(encoded))
	delta := make([]int, len(encoded))
	fulfillable := make([]bool, len(encoded))
	for i, mb := range encoded {
		asCondition[i] = oer.VarUIntSize(uint64(mb.weight)) +
			oer.VarOctetStringSize(0) +
			oer.VarOctetStringSize(len(mb.condition))
		if mb.fulfillment != nil {
			fulfillable[i] = true
			asFulfillment := oer.VarUIntSize(uint64(mb.weight)) +
				oer.VarOctetStringSize(len(mb.fulfillment)) +
				oer.VarOctetStringSize(0)
			delta[i] = asFulfillment - asCondition[i]
		}
	}
	weights := make([]int64, len(encoded))
	for i, mb := range encoded {
		weights[i] = int64(mb.weight)
	}
	chosen, ok := smallestCoveringSet(int64(f.threshold), weights, delta, fulfillable)
	if !ok {
		return fmt.Errorf("%w: subfulfillments cover weight below threshold %d", ErrThresholdNotMet, f.threshold)
	}

	members := make([][]byte, 0, len(encoded))
	for i, mb := range encoded {
		mw := oer.NewWriter()
		mw.WriteVarUInt(uint64(mb.weight))
		if chosen[i] {
			mw.WriteVarOctetString(mb.fulfillment)
			mw.WriteVarOctetString(nil)
		} else {
			mw.WriteVarOctetString(nil)
			mw.WriteVarOctetString(mb.condition)
		}
		members = append(members, mw.Bytes())
	}
	sortBuffers(members)
	w.WriteVarUInt(uint64(f.threshold))
	w.WriteVarUInt(uint64(len(members)))
	for _, m := range members {
		w.Write(m)
	}
	return nil
}

func (f *ThresholdSha256) parsePayload(r *oer.Reader, depth int) error {
	threshold, err := r.ReadVarUInt()
	if err != nil {
		return fmt.Errorf("%w: threshold: %s", ErrParse, err)
	}
	if threshold > math.MaxUint32 {
		return fmt.Errorf("%w: threshold %d", ErrTooLarge, threshold)
	}
	count, err := r.ReadVarUInt()
	if err != nil {
		return fmt.Errorf("%w: member count: %s", ErrParse, err)
	}
	if count > maxThresholdMembers {
		return fmt.Errorf("%w: %d threshold members", ErrTooLarge, count)
	}
	members := make([]thresholdMember, 0, count)
	for i := uint64(0); i < count; i++ {
		weight, err := r.ReadVarUInt()
		if err != nil {
			return fmt.Errorf("%w: member weight: %s", ErrParse, err)
		}
		if weight > math.MaxUint32 {
			return fmt.Errorf("%w: member weight %d", ErrTooLarge, weight)
		}
		fulfillmentBytes, err := r.ReadVarOctetString()
		if err != nil {
			return fmt.Errorf("%w: member fulfillment: %s", ErrParse, err)
		}
		conditionBytes, err := r.ReadVarOctetString()
		if err != nil {
			return fmt.Errorf("%w: member condition: %s", ErrParse, err)
		}
		m := thresholdMember{weight: uint32(weight)}
		switch {
		case len(fulfillmentBytes) > 0 && len(conditionBytes) > 0:
			return fmt.Errorf("%w: threshold member carries both fulfillment and condition", ErrParse)
		case len(fulfillmentBytes) > 0:
			sr := oer.NewReader(fulfillmentBytes)
			sub, err := readFulfillment(sr, depth+1)
			if err != nil {
				return err
			}
			if sr.HasMore() {
				return fmt.Errorf("%w: trailing bytes in member fulfillment", ErrParse)
			}
			m.fulfillment = sub
		case len(conditionBytes) > 0:
			sub, err := ParseConditionBinary(conditionBytes)
			if err != nil {
				return err
			}
			m.condition = sub
		default:
			return fmt.Errorf("%w: empty threshold member", ErrParse)
		}
		members = append(members, m)
	}
	f.threshold = uint32(threshold)
	f.members = members
	return nil
}

// maxFulfillmentLength simulates the worst-case selection: every member
// counted as a condition, plus the largest total growth any covering set
// of revealed members could add. Unfulfilled members contribute their
// condition's committed bound. The threshold/count header is not part of
// the committed figure.
func (f *ThresholdSha256) maxFulfillmentLength() (int, error) {
	if len(f.members) == 0 {
		return 0, fmt.Errorf("%w: threshold requires subconditions", ErrMissingData)
	}
	total := 0
	weights := make([]int64, len(f.members))
	delta := make([]int, len(f.members))
	for i := range f.members {
		m := &f.members[i]
		cond, err := m.memberCondition()
		if err != nil {
			return 0, err
		}
		var subMax int
		if m.fulfillment != nil {
			subMax, err = m.fulfillment.maxFulfillmentLength()
			if err != nil {
				return 0, err
			}
		} else {
			subMax = cond.MaxFulfillmentLength
		}
		asCondition := oer.VarUIntSize(uint64(m.weight)) +
			oer.VarOctetStringSize(0) +
			oer.VarOctetStringSize(cond.binarySize())
		subBinary := 2 + oer.VarOctetStringSize(subMax)
		asFulfillment := oer.VarUIntSize(uint64(m.weight)) +
			oer.VarOctetStringSize(subBinary) +
			oer.VarOctetStringSize(0)
		total += asCondition
		weights[i] = int64(m.weight)
		delta[i] = asFulfillment - asCondition
	}
	extra, ok := worstCaseExtra(int64(f.threshold), weights, delta)
	if !ok {
		return 0, fmt.Errorf("%w: member weights cannot reach threshold %d", ErrMissingData, f.threshold)
	}
	return total + extra, nil
}

// sortBuffers orders encoded members canonically: shorter first, ties by
// lexicographic byte order.
func sortBuffers(bufs [][]byte) {
	sort.Slice(bufs, func(i, j int) bool {
		if len(bufs[i]) != len(bufs[j]) {
			return len(bufs[i]) < len(bufs[j])
		}
		return bytes.Compare(bufs[i], bufs[j]) < 0
	})
}

// smallestCoveringSet picks, among the fulfillable members, the subset
// whose weights reach the threshold while adding the fewest bytes over
// the all-conditions encoding. Exhaustive with a branch-and-bound prune:
// member counts are bounded and deltas are small.
func smallestCoveringSet(threshold int64, weights []int64, delta []int, fulfillable []bool) ([]bool, bool) {
	n := len(weights)
	// Lower bound on the delta still reachable from index i: the sum of
	// all remaining negative deltas.
	remainingGain := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		remainingGain[i] = remainingGain[i+1]
		if fulfillable[i] && delta[i] < 0 {
			remainingGain[i] += delta[i]
		}
	}
	const unset = math.MaxInt
	best := unset
	var bestSet []bool
	current := make([]bool, n)
	var walk func(i int, weight int64, size int)
	walk = func(i int, weight int64, size int) {
		if best != unset && size+remainingGain[i] >= best {
			return
		}
		if i == n {
			if weight >= threshold && size < best {
				best = size
				bestSet = append([]bool(nil), current...)
			}
			return
		}
		if fulfillable[i] {
			current[i] = true
			walk(i+1, weight+weights[i], size+delta[i])
			current[i] = false
		}
		walk(i+1, weight, size)
	}
	walk(0, 0, 0)
	return bestSet, best != unset
}

// worstCaseExtra maximizes the summed delta over member subsets whose
// weights reach the threshold. The result can be negative when revealing
// members shrinks the encoding.
func worstCaseExtra(threshold int64, weights []int64, delta []int) (int, bool) {
	n := len(weights)
	var walk func(i int, remaining int64) (int, bool)
	walk = func(i int, remaining int64) (int, bool) {
		if remaining <= 0 {
			// Threshold reached; further members are only taken if they
			// grow the bound.
			extra := 0
			for ; i < n; i++ {
				if delta[i] > 0 {
					extra += delta[i]
				}
			}
			return extra, true
		}
		if i == n {
			return 0, false
		}
		take, takeOK := walk(i+1, remaining-weights[i])
		if takeOK {
			take += delta[i]
		}
		skip, skipOK := walk(i+1, remaining)
		switch {
		case takeOK && skipOK:
			if take > skip {
				return take, true
			}
			return skip, true
		case takeOK:
			return take, true
		case skipOK:
			return skip, true
		default:
			return 0, false
		}
	}
	return walk(0, threshold)
}
