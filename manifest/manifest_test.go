package manifest

import (
	"reflect"
	"testing"
)

func TestParseExternalResources(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		want      []string
		expectErr bool
	}{
		{
			name:  "Single resource",
			input: `{"externalResources": ["https://example.com"]}`,
			want:  []string{"https://example.com"},
		},
		{
			name:  "Multiple resources",
			input: `{"externalResources": ["https://a.test", "https://b.test"]}`,
			want:  []string{"https://a.test", "https://b.test"},
		},
		{
			name:  "Field absent",
			input: `{"name": "my-mod", "version": "1.0.0"}`,
			want:  []string{},
		},
		{
			name:  "Field null",
			input: `{"externalResources": null}`,
			want:  []string{},
		},
		{
			name:  "Field not an array",
			input: `{"externalResources": "https://example.com"}`,
			want:  []string{},
		},
		{
			name:  "Field array of non-strings",
			input: `{"externalResources": [1, 2]}`,
			want:  []string{},
		},
		{
			name:      "Malformed document",
			input:     `{"externalResources": ["https://exam`,
			expectErr: true,
		},
		{
			name:      "Empty input",
			input:     ``,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseExternalResources([]byte(tc.input))
			if (err != nil) != tc.expectErr {
				t.Fatalf("ParseExternalResources() error = %v, expectErr %v", err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseExternalResources() got = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestList_ReplaceAndGet(t *testing.T) {
	t.Parallel()

	list := NewList()
	if got := list.Get(); len(got) != 0 {
		t.Fatalf("new list should be empty, got %v", got)
	}

	list.Replace([]string{"a", "b"})
	if got := list.Get(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Get() got = %v, want [a b]", got)
	}

	// Replacement is wholesale, not a merge.
	list.Replace([]string{"c"})
	if got := list.Get(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Get() got = %v, want [c]", got)
	}

	list.Replace(nil)
	if got := list.Get(); len(got) != 0 {
		t.Errorf("Get() after Replace(nil) got = %v, want empty", got)
	}
}

func TestList_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	list := NewList()
	list.Replace([]string{"a", "b"})

	got := list.Get()
	got[0] = "mutated"

	if fresh := list.Get(); fresh[0] != "a" {
		t.Errorf("mutating a snapshot leaked into the list: %v", fresh)
	}
}

func TestList_Subscribe(t *testing.T) {
	t.Parallel()

	list := NewList()
	var seen [][]string
	list.Subscribe(func(resources []string) {
		seen = append(seen, resources)
	})

	list.Replace([]string{"a"})
	list.Touch()

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !reflect.DeepEqual(seen[0], []string{"a"}) {
		t.Errorf("first notification got %v, want [a]", seen[0])
	}
	// Touch re-delivers the unchanged list.
	if !reflect.DeepEqual(seen[1], []string{"a"}) {
		t.Errorf("second notification got %v, want [a]", seen[1])
	}
}
