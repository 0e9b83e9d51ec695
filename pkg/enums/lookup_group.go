package enums

import "fmt"

// LookupGroup names one of the enumerations stored in the shared lookup table.
type LookupGroup string

const (
	LookupGroupMenuCategory             LookupGroup = "menu_category"
	LookupGroupOrderStatus              LookupGroup = "order_status"
	LookupGroupMaintenance              LookupGroup = "maintenance"
	LookupGroupInventoryTransactionType LookupGroup = "inventory_transaction_type"
)

// Display value of the status every new order starts in.
const OrderStatusPending = "Pending"

// LookupFilter identifies the rows of a group. Empty fields do not filter.
type LookupFilter struct {
	GroupID   int64
	GroupName string
	OrderBy   string
}

var lookupFilters = map[LookupGroup]LookupFilter{
	LookupGroupMenuCategory:             {GroupName: "Menu_Category", OrderBy: "id"},
	LookupGroupOrderStatus:              {GroupName: "Order Status", OrderBy: "id"},
	LookupGroupMaintenance:              {GroupID: 3, GroupName: "Maintenance", OrderBy: "display"},
	LookupGroupInventoryTransactionType: {GroupID: 7, OrderBy: "display"},
}

var validLookupGroups = []LookupGroup{
	LookupGroupMenuCategory,
	LookupGroupOrderStatus,
	LookupGroupMaintenance,
	LookupGroupInventoryTransactionType,
}

// String implements fmt.Stringer.
func (g LookupGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is a known LookupGroup.
func (g LookupGroup) IsValid() bool {
	_, ok := lookupFilters[g]
	return ok
}

// Filter returns the lookup table predicate for the group.
func (g LookupGroup) Filter() LookupFilter {
	return lookupFilters[g]
}

// Matches reports whether a lookup row with the given group id and name belongs to g.
func (g LookupGroup) Matches(groupID int64, groupName string) bool {
	f, ok := lookupFilters[g]
	if !ok {
		return false
	}
	if f.GroupID != 0 && f.GroupID != groupID {
		return false
	}
	if f.GroupName != "" && f.GroupName != groupName {
		return false
	}
	return true
}

// LookupGroups lists every known group.
func LookupGroups() []LookupGroup {
	out := make([]LookupGroup, len(validLookupGroups))
	copy(out, validLookupGroups)
	return out
}

// ParseLookupGroup converts raw input into a LookupGroup.
func ParseLookupGroup(value string) (LookupGroup, error) {
	for _, candidate := range validLookupGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lookup group %q", value)
}
