package fiscal

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerAllocation is one owner's slice of the consolidated VAT totals.
type OwnerAllocation struct {
	OwnerID             uuid.UUID       `json:"owner_id"`
	OwnerName           string          `json:"owner_name"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
	VATSupported        decimal.Decimal `json:"vat_supported"`
	VATCharged          decimal.Decimal `json:"vat_charged"`
	NetPosition         decimal.Decimal `json:"net_position"`
}

// OwnerAllocationReport redistributes the consolidated book totals across
// owners. The overall total row equals the un-allocated aggregates exactly;
// rounding residue is reconciled with a largest-remainder correction.
type OwnerAllocationReport struct {
	Period       Period            `json:"period"`
	Owners       []OwnerAllocation `json:"owners"`
	OverallTotal OwnerAllocation   `json:"overall_total"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// AllocateOwners distributes the supported and charged entries across the
// owners holding shares in the entries' estates. Entries without an estate
// (generic internal expenses) are allocated with the company-wide default
// ownership table, which the caller supplies explicitly. An estate-linked
// entry whose shares are missing or sum to zero fails the whole report
// with an IncompleteOwnershipError.
func AllocateOwners(period Period, supported, charged []FiscalEntry, defaultShares []OwnershipShare, now time.Time) (*OwnerAllocationReport, error) {
	acc := newOwnerAccumulator(defaultShares)
	if err := acc.addEntries(supported, measureSupported); err != nil {
		return nil, err
	}
	if err := acc.addEntries(charged, measureCharged); err != nil {
		return nil, err
	}
	owners, overall := acc.reconcile()
	return &OwnerAllocationReport{
		Period:       period,
		Owners:       owners,
		OverallTotal: overall,
		GeneratedAt:  now,
	}, nil
}

type measure int

const (
	measureSupported measure = iota
	measureCharged
)

type ownerTotals struct {
	id        uuid.UUID
	name      string
	supported decimal.Decimal // exact, unrounded
	charged   decimal.Decimal // exact, unrounded
	base      decimal.Decimal // exact tax base share, drives the effective percentage
}

type ownerAccumulator struct {
	defaultShares []OwnershipShare
	owners        map[uuid.UUID]*ownerTotals

	targetSupported decimal.Decimal
	targetCharged   decimal.Decimal
	totalBase       decimal.Decimal
}

func newOwnerAccumulator(defaultShares []OwnershipShare) *ownerAccumulator {
	return &ownerAccumulator{
		defaultShares:   defaultShares,
		owners:          make(map[uuid.UUID]*ownerTotals),
		targetSupported: decimal.Zero,
		targetCharged:   decimal.Zero,
		totalBase:       decimal.Zero,
	}
}

func (a *ownerAccumulator) addEntries(entries []FiscalEntry, m measure) error {
	hundred := decimal.NewFromInt(100)
	for _, e := range entries {
		shares, err := a.sharesFor(e)
		if err != nil {
			return err
		}
		for _, s := range shares {
			ot, ok := a.owners[s.OwnerID]
			if !ok {
				ot = &ownerTotals{
					id:        s.OwnerID,
					name:      s.OwnerName,
					supported: decimal.Zero,
					charged:   decimal.Zero,
					base:      decimal.Zero,
				}
				a.owners[s.OwnerID] = ot
			}
			fraction := s.Percentage.Div(hundred)
			vatShare := e.VATAmount.Mul(fraction)
			if m == measureSupported {
				ot.supported = ot.supported.Add(vatShare)
			} else {
				ot.charged = ot.charged.Add(vatShare)
			}
			ot.base = ot.base.Add(e.TaxBase.Mul(fraction))
		}
		if m == measureSupported {
			a.targetSupported = a.targetSupported.Add(e.VATAmount)
		} else {
			a.targetCharged = a.targetCharged.Add(e.VATAmount)
		}
		a.totalBase = a.totalBase.Add(e.TaxBase)
	}
	return nil
}

// sharesFor resolves the ownership table for an entry: the estate's shares
// when the entry is estate-linked, the company default table otherwise.
func (a *ownerAccumulator) sharesFor(e FiscalEntry) ([]OwnershipShare, error) {
	shares := e.OwnerShares
	estateID := uuid.Nil
	if e.EstateID != nil {
		estateID = *e.EstateID
	} else {
		shares = a.defaultShares
	}
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Percentage)
	}
	if len(shares) == 0 || total.IsZero() {
		return nil, &IncompleteOwnershipError{EstateID: estateID, EntryID: e.ID}
	}
	return shares, nil
}

// reconcile rounds each owner's exact totals to cents and redistributes
// the residual so the per-owner amounts sum exactly to the aggregate
// totals: floor to cents, then hand out the leftover cents by largest
// fractional remainder, ties broken by owner ID.
func (a *ownerAccumulator) reconcile() ([]OwnerAllocation, OwnerAllocation) {
	ids := make([]uuid.UUID, 0, len(a.owners))
	for id := range a.owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	supported := largestRemainder(ids, a.owners, a.targetSupported, func(ot *ownerTotals) decimal.Decimal { return ot.supported })
	charged := largestRemainder(ids, a.owners, a.targetCharged, func(ot *ownerTotals) decimal.Decimal { return ot.charged })

	hundred := decimal.NewFromInt(100)
	owners := make([]OwnerAllocation, 0, len(ids))
	overall := OwnerAllocation{
		OwnerName:           "TOTAL",
		OwnershipPercentage: hundred,
		VATSupported:        round2(a.targetSupported),
		VATCharged:          round2(a.targetCharged),
	}
	overall.NetPosition = overall.VATCharged.Sub(overall.VATSupported)

	for _, id := range ids {
		ot := a.owners[id]
		pct := decimal.Zero
		if !a.totalBase.IsZero() {
			pct = ot.base.Div(a.totalBase).Mul(hundred).Round(2)
		}
		alloc := OwnerAllocation{
			OwnerID:             id,
			OwnerName:           ot.name,
			OwnershipPercentage: pct,
			VATSupported:        supported[id],
			VATCharged:          charged[id],
		}
		alloc.NetPosition = alloc.VATCharged.Sub(alloc.VATSupported)
		owners = append(owners, alloc)
	}
	if len(owners) == 0 {
		overall.OwnershipPercentage = decimal.Zero
	}
	return owners, overall
}

// largestRemainder allocates target (rounded to cents) across owners in
// proportion to their exact values. Every owner gets the floor of its
// exact cent amount; the remaining cents go one by one to the largest
// fractional remainders, owner ID deciding ties deterministically.
func largestRemainder(ids []uuid.UUID, owners map[uuid.UUID]*ownerTotals, target decimal.Decimal, value func(*ownerTotals) decimal.Decimal) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out
	}

	hundred := decimal.NewFromInt(100)
	targetCents := round2(target).Mul(hundred)

	type rem struct {
		id       uuid.UUID
		fraction decimal.Decimal
	}
	floors := make(map[uuid.UUID]decimal.Decimal, len(ids))
	remainders := make([]rem, 0, len(ids))
	floorSum := decimal.Zero
	for _, id := range ids {
		cents := value(owners[id]).Mul(hundred)
		floor := cents.Floor()
		floors[id] = floor
		floorSum = floorSum.Add(floor)
		remainders = append(remainders, rem{id: id, fraction: cents.Sub(floor)})
	}

	residual := targetCents.Sub(floorSum)
	sort.Slice(remainders, func(i, j int) bool {
		if !remainders[i].fraction.Equal(remainders[j].fraction) {
			return remainders[i].fraction.GreaterThan(remainders[j].fraction)
		}
		return remainders[i].id.String() < remainders[j].id.String()
	})

	one := decimal.NewFromInt(1)
	for i := 0; residual.GreaterThanOrEqual(one); i = (i + 1) % len(remainders) {
		floors[remainders[i].id] = floors[remainders[i].id].Add(one)
		residual = residual.Sub(one)
	}
	// A share table allowed to drift below 100% by rounding tolerance can
	// leave the floors one cent above the target; claw back from the
	// smallest remainders.
	for i := len(remainders) - 1; residual.LessThanOrEqual(one.Neg()); i = (i - 1 + len(remainders)) % len(remainders) {
		floors[remainders[i].id] = floors[remainders[i].id].Sub(one)
		residual = residual.Add(one)
	}

	for _, id := range ids {
		out[id] = floors[id].Div(hundred)
	}
	return out
}
