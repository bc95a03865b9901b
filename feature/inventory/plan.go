package inventory

import (
	"strings"

	"catalog-sync/core/reconcile"
)

const (
	reasonMissingSKU = "missing sku"
	reasonSuperseded = "superseded by a later line"
	reasonUnchanged  = "quantity unchanged"
)

// BuildPlan partitions records against the stored items of source. A SKU repeated in the
// batch keeps its last occurrence; earlier ones are skipped. SKUs listed in removed and
// absent from records are planned down to quantity 0.
func BuildPlan(source string, existing []Item, records []Record, removed []string) reconcile.Plan[Item] {
	bySKU := make(map[string]Item, len(existing))
	for _, it := range existing {
		bySKU[it.SKU] = it
	}

	last := make(map[string]int, len(records))
	for i, rec := range records {
		last[strings.TrimSpace(rec.SKU)] = i
	}

	var plan reconcile.Plan[Item]
	for i, rec := range records {
		sku := strings.TrimSpace(rec.SKU)
		if sku == "" {
			plan.Add(reconcile.Action[Item]{Type: reconcile.ActionSkip, Reason: reasonMissingSKU})
			continue
		}
		if last[sku] != i {
			plan.Add(reconcile.Action[Item]{Type: reconcile.ActionSkip, Key: sku, Reason: reasonSuperseded})
			continue
		}

		current, ok := bySKU[sku]
		if !ok {
			item := Item{Source: source, SKU: sku, Quantity: rec.Quantity}
			if upc := strings.TrimSpace(rec.UPC); upc != "" {
				item.UPC = &upc
			}
			plan.Add(reconcile.Action[Item]{Type: reconcile.ActionInsert, Key: sku, Record: item})
			continue
		}
		if current.Quantity == rec.Quantity {
			plan.Add(reconcile.Action[Item]{Type: reconcile.ActionSkip, Key: sku, Reason: reasonUnchanged})
			continue
		}
		current.Quantity = rec.Quantity
		plan.Add(reconcile.Action[Item]{Type: reconcile.ActionUpdate, Key: sku, Record: current})
	}

	zeroed := make(map[string]struct{}, len(removed))
	for _, sku := range removed {
		sku = strings.TrimSpace(sku)
		if _, still := last[sku]; still {
			continue
		}
		if _, done := zeroed[sku]; done {
			continue
		}
		zeroed[sku] = struct{}{}
		current, ok := bySKU[sku]
		if !ok || current.Quantity == 0 {
			continue
		}
		current.Quantity = 0
		plan.Add(reconcile.Action[Item]{Type: reconcile.ActionUpdate, Key: sku, Reason: "dropped from feed", Record: current})
	}

	return plan
}

func quantityUpdates(actions []reconcile.Action[Item]) []QuantityUpdate {
	out := make([]QuantityUpdate, 0, len(actions))
	for _, a := range actions {
		out = append(out, QuantityUpdate{ID: a.Record.ID, SKU: a.Record.SKU, Quantity: a.Record.Quantity})
	}
	return out
}
