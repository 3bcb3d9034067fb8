package auction

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount of euros in cents.
type Money int64

// ParseMoney parses amounts as published ("81.971,57 €"), only the text
// before the first space is considered. Text that is not a number, like
// "Sin puja mínima", is zero.
func ParseMoney(text string) Money {
	if i := strings.IndexByte(text, ' '); i >= 0 {
		text = text[:i]
	}
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", "")
	cents, err := strconv.ParseInt(text, 10, 64)
	if err != nil || cents < 0 {
		return 0
	}
	return Money(cents)
}

// String renders the canonical storage form, ex. "81971.57".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// ParseCanonicalMoney is the inverse of Money.String.
func ParseCanonicalMoney(text string) (Money, error) {
	units, cents, found := strings.Cut(text, ".")
	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", text, err)
	}
	var c int64
	if found {
		if len(cents) != 2 {
			return 0, fmt.Errorf("parse money %q: expected 2 decimals", text)
		}
		c, err = strconv.ParseInt(cents, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse money %q: %w", text, err)
		}
	}
	if u < 0 {
		return 0, fmt.Errorf("parse money %q: negative amount", text)
	}
	return Money(u*100 + c), nil
}

// Euros returns the amount as a float, for display and statistics only.
func (m Money) Euros() float64 {
	return float64(m) / 100
}

// BidInfo holds the bidding terms of an auction or of one of its lots.
type BidInfo struct {
	Appraisal     Money
	BidStep       Money
	ClaimQuantity Money
	Deposit       Money
	MinimumBid    Money
	Value         Money
}

func newBidInfo(data ConceptMap) BidInfo {
	return BidInfo{
		Appraisal:     data.money(ConceptAppraisal),
		BidStep:       data.money(ConceptBidStep),
		ClaimQuantity: data.money(ConceptClaimQuantity),
		Deposit:       data.money(ConceptDepositAmount),
		MinimumBid:    data.money(ConceptMinimumBid),
		Value:         data.money(ConceptAuctionValue),
	}
}

// override replaces the fields of b present in data.
func (b BidInfo) override(data ConceptMap) BidInfo {
	set := func(field *Money, c Concept) {
		if text, ok := data[c]; ok {
			*field = ParseMoney(text)
		}
	}
	set(&b.Appraisal, ConceptAppraisal)
	set(&b.BidStep, ConceptBidStep)
	set(&b.ClaimQuantity, ConceptClaimQuantity)
	set(&b.Deposit, ConceptDepositAmount)
	set(&b.MinimumBid, ConceptMinimumBid)
	set(&b.Value, ConceptAuctionValue)
	return b
}

// Pack serializes the bid info into a single column value.
func (b BidInfo) Pack() string {
	return strings.Join([]string{
		b.Appraisal.String(),
		b.BidStep.String(),
		b.ClaimQuantity.String(),
		b.Deposit.String(),
		b.MinimumBid.String(),
		b.Value.String(),
	}, " ")
}

// UnpackBidInfo is the inverse of BidInfo.Pack.
func UnpackBidInfo(packed string) (BidInfo, error) {
	fields := strings.Fields(packed)
	if len(fields) != 6 {
		return BidInfo{}, fmt.Errorf("unpack bidinfo: expected 6 amounts, got %d", len(fields))
	}
	amounts := make([]Money, len(fields))
	for i, f := range fields {
		m, err := ParseCanonicalMoney(f)
		if err != nil {
			return BidInfo{}, fmt.Errorf("unpack bidinfo: %w", err)
		}
		amounts[i] = m
	}
	return BidInfo{
		Appraisal:     amounts[0],
		BidStep:       amounts[1],
		ClaimQuantity: amounts[2],
		Deposit:       amounts[3],
		MinimumBid:    amounts[4],
		Value:         amounts[5],
	}, nil
}

func (m ConceptMap) money(c Concept) Money {
	text, ok := m[c]
	if !ok {
		return 0
	}
	return ParseMoney(text)
}
