package card

import "time"

// Variant configures which interactions a Card offers and how it looks.
type Variant struct {
	Name string

	Flip         bool
	FlipDuration time.Duration

	Expand         bool
	ExpandDuration time.Duration

	// Cooldown follows every flip/expand transition.
	Cooldown time.Duration

	Share       bool
	ShowSources bool
	ShowTopic   bool

	// PreviewChars truncates the collapsed summary text; 0 shows it all.
	PreviewChars int

	ToastPoints bool
	ToastStreak bool
}

// VariantBuilder assembles a Variant starting from the plain defaults.
type VariantBuilder struct {
	v Variant
}

func NewVariant(name string) *VariantBuilder {
	return &VariantBuilder{v: Variant{
		Name:        name,
		Cooldown:    100 * time.Millisecond,
		ShowTopic:   true,
		ToastPoints: true,
		ToastStreak: true,
	}}
}

func (b *VariantBuilder) WithFlip(d time.Duration) *VariantBuilder {
	b.v.Flip = true
	b.v.FlipDuration = d
	return b
}

func (b *VariantBuilder) WithExpand(d time.Duration) *VariantBuilder {
	b.v.Expand = true
	b.v.ExpandDuration = d
	return b
}

func (b *VariantBuilder) WithCooldown(d time.Duration) *VariantBuilder {
	b.v.Cooldown = d
	return b
}

func (b *VariantBuilder) WithShare() *VariantBuilder {
	b.v.Share = true
	return b
}

func (b *VariantBuilder) WithSources() *VariantBuilder {
	b.v.ShowSources = true
	return b
}

func (b *VariantBuilder) WithoutTopic() *VariantBuilder {
	b.v.ShowTopic = false
	return b
}

func (b *VariantBuilder) WithPreview(chars int) *VariantBuilder {
	b.v.PreviewChars = chars
	return b
}

func (b *VariantBuilder) WithToasts(points, streak bool) *VariantBuilder {
	b.v.ToastPoints = points
	b.v.ToastStreak = streak
	return b
}

func (b *VariantBuilder) Build() Variant {
	return b.v
}

// Preset variants used by the views.
func Classic() Variant {
	return NewVariant("classic").WithExpand(300 * time.Millisecond).WithSources().WithShare().WithPreview(280).Build()
}

func Compact() Variant {
	return NewVariant("compact").WithPreview(120).WithToasts(true, false).Build()
}

func Flippable() Variant {
	return NewVariant("flip").WithFlip(600 * time.Millisecond).WithSources().WithShare().WithPreview(200).Build()
}

func Modal() Variant {
	return NewVariant("modal").WithExpand(250 * time.Millisecond).WithSources().WithShare().Build()
}

// VariantByName returns a preset, falling back to Classic.
func VariantByName(name string) Variant {
	switch name {
	case "compact":
		return Compact()
	case "flip":
		return Flippable()
	case "modal":
		return Modal()
	}
	return Classic()
}
