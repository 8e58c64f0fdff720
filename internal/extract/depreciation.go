package extract

import (
	"strconv"
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// lookaheadLines is how far past an asset line the extractor looks for an
// effective life or depreciation method.
const lookaheadLines = 2

// DepreciationAssets scans for lines that carry both a depreciation-domain
// keyword and a currency amount. The deduction flags are derived from the
// asset value bands; effective life and method are picked up
// opportunistically from the same line and the next two.
func DepreciationAssets(text string) []entity.DepreciationInfo {
	lines := strings.Split(text, "\n")
	var assets []entity.DepreciationInfo

	for i, line := range lines {
		if !patterns.DepreciationLine.MatchString(line) {
			continue
		}
		m := patterns.CurrencyAmount.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, ok := patterns.ParseAmount(m[1])
		if !ok {
			continue
		}

		immediate, pool := entity.AssetValueBands(value)
		asset := entity.DepreciationInfo{
			AssetDescription:     assetDescription(line, m[0]),
			AssetValue:           value,
			IsImmediateDeduction: immediate,
			IsLowValuePool:       pool,
			Confidence:           confAsset,
		}

		hi := min(len(lines), i+lookaheadLines+1)
		for _, near := range lines[i:hi] {
			if asset.EffectiveLifeYears == nil {
				if years, ok := effectiveLife(near); ok {
					asset.EffectiveLifeYears = &years
					asset.Confidence += effectiveLifeBump
				}
			}
			if asset.DepreciationMethod == "" {
				switch {
				case patterns.PrimeCost.MatchString(near):
					asset.DepreciationMethod = entity.MethodPrimeCost
				case patterns.DiminishingValue.MatchString(near):
					asset.DepreciationMethod = entity.MethodDiminishingValue
				}
			}
		}

		assets = append(assets, asset)
	}
	return assets
}

// assetDescription is the line text preceding the amount, with label
// punctuation trimmed.
func assetDescription(line, amountToken string) string {
	desc := line
	if idx := strings.Index(line, amountToken); idx >= 0 {
		desc = line[:idx]
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(desc), ":-"))
}

func effectiveLife(line string) (int, bool) {
	m := patterns.EffectiveLife.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	capture := m[1]
	if capture == "" {
		capture = m[2]
	}
	years, err := strconv.Atoi(capture)
	if err != nil || years <= 0 {
		return 0, false
	}
	return years, true
}
