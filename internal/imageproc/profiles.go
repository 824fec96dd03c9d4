package imageproc

// Profile is a named compression policy applied to one image type.
// Output is always JPEG at Quality; MaxWidth/MaxHeight bound the result
// without ever enlarging a smaller source.
type Profile struct {
	Type      string
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// profiles maps every accepted image type to exactly one policy.
var profiles = map[string]Profile{
	"profile":   {Type: "profile", MaxWidth: 400, MaxHeight: 400, Quality: 80},
	"thumbnail": {Type: "thumbnail", MaxWidth: 800, MaxHeight: 800, Quality: 85},
	"cover":     {Type: "cover", MaxWidth: 1200, MaxHeight: 1200, Quality: 90},
}

// ProfileFor resolves an image type to its compression profile.
// The second return value is false for unknown types.
func ProfileFor(imageType string) (Profile, bool) {
	p, ok := profiles[imageType]
	return p, ok
}
