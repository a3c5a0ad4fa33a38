package bot

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want Role
	}{
		{
			name: "mod user-type",
			msg:  Message{UserType: "mod"},
			want: Moderator,
		},
		{
			name: "mod wins over broadcaster badge",
			msg:  Message{UserType: "mod", Badges: map[string]int{"broadcaster": 1}},
			want: Moderator,
		},
		{
			name: "broadcaster badge",
			msg:  Message{Badges: map[string]int{"broadcaster": 1}},
			want: Streamer,
		},
		{
			name: "subscriber badge only",
			msg:  Message{Badges: map[string]int{"subscriber": 12}},
			want: Viewer,
		},
		{
			name: "no metadata",
			msg:  Message{},
			want: Viewer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.msg); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleString(t *testing.T) {
	if Moderator.String() != "moderator" || Streamer.String() != "streamer" || Viewer.String() != "viewer" {
		t.Errorf("unexpected role names: %v %v %v", Moderator, Streamer, Viewer)
	}
}
