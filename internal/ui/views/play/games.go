package play

import "strings"

const (
	gameDigitspan  = "digitspan"
	gameShapedance = "shapedance"
	gameNumerosity = "numerosity"
	gamePathfinder = "pathfinder"
	gameFlashback  = "flashback"
)

// selectKeys label selectable items in order, one page at a time. q is left
// out for quit.
const selectKeys = "123456789abcdefghijklmnoprstuvwxyz"

// SelectKeys lists the keys that pick an item on the current page.
func SelectKeys() []string {
	return strings.Split(selectKeys, "")
}

func pageCount(items int) int {
	return max(1, (items+len(selectKeys)-1)/len(selectKeys))
}

// selectLabel names the key for index on page, or a dot when index lives on
// another page.
func selectLabel(index, page int) string {
	off := index - page*len(selectKeys)
	if index < 0 || off < 0 || off >= len(selectKeys) {
		return "·"
	}
	return selectKeys[off : off+1]
}

// selectIndex maps a key pressed on page to an item index.
func selectIndex(key string, page, items int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	off := strings.Index(selectKeys, key)
	if off < 0 {
		return 0, false
	}
	idx := page*len(selectKeys) + off
	return idx, idx < items
}
