package service

import "strconv"

// nextUsername picks the username for base given the usernames already
// taken: base itself when free, otherwise base followed by the smallest
// positive integer that yields a free name.
func nextUsername(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, u := range taken {
		used[u] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base
	}
	for n := 1; ; n++ {
		candidate := base + strconv.Itoa(n)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
