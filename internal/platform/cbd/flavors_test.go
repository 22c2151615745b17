package cbd

import "testing"

var cbdFlavors = []Flavor{
	{ID: "hadoop1-7", Name: "Small Hadoop Instance"},
	{ID: "hadoop1-15", Name: "Medium Hadoop Instance"},
	{ID: "hadoop1-30", Name: "Large Hadoop Instance"},
	{ID: "hadoop1-60", Name: "XLarge Hadoop Instance"},
}

func TestResolveFlavorID(t *testing.T) {
	tests := []struct {
		name    string
		flavors []Flavor
		flavor  string
		want    string
		wantErr bool
	}{
		{
			name:    "match by name",
			flavors: cbdFlavors,
			flavor:  "Small Hadoop Instance",
			want:    "hadoop1-7",
		},
		{
			name:    "match by id",
			flavors: cbdFlavors,
			flavor:  "hadoop1-30",
			want:    "hadoop1-30",
		},
		{
			name:    "no match",
			flavors: cbdFlavors,
			flavor:  "Giant Hadoop Instance",
			wantErr: true,
		},
		{
			name:    "empty list",
			flavors: nil,
			flavor:  "Small Hadoop Instance",
			wantErr: true,
		},
		{
			name: "first match wins when name and id collide",
			flavors: []Flavor{
				{ID: "hadoop1-7", Name: "Small Hadoop Instance"},
				{ID: "Small Hadoop Instance", Name: "Imposter"},
			},
			flavor: "Small Hadoop Instance",
			want:   "hadoop1-7",
		},
		{
			name: "scan order is list order",
			flavors: []Flavor{
				{ID: "dup-1", Name: "Duplicate"},
				{ID: "dup-2", Name: "Duplicate"},
			},
			flavor: "Duplicate",
			want:   "dup-1",
		},
		{
			name:    "no partial matches",
			flavors: cbdFlavors,
			flavor:  "Small",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFlavorID(tt.flavors, tt.flavor)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveFlavorID(%q) expected error, got %q", tt.flavor, got)
				}
				if !IsEntityNotFound(err) {
					t.Errorf("ResolveFlavorID(%q) error = %v, want EntityNotFoundError", tt.flavor, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFlavorID(%q) unexpected error: %v", tt.flavor, err)
			}
			if got != tt.want {
				t.Errorf("ResolveFlavorID(%q) = %q, want %q", tt.flavor, got, tt.want)
			}
		})
	}
}
