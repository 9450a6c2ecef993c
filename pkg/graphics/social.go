package graphics

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// SocialFormat is a named social-media canvas size.
type SocialFormat struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SocialFormats is the catalog of export canvases.
var SocialFormats = []SocialFormat{
	{Name: "instagram_post", Width: 1080, Height: 1080},
	{Name: "instagram_story", Width: 1080, Height: 1920},
	{Name: "facebook_post", Width: 1200, Height: 630},
	{Name: "twitter_post", Width: 1200, Height: 675},
	{Name: "linkedin_post", Width: 1200, Height: 627},
	{Name: "youtube_thumbnail", Width: 1280, Height: 720},
	{Name: "youtube_banner", Width: 2560, Height: 1440},
}

// SocialFill is the fraction of the canvas the logo occupies along its limiting axis.
const SocialFill = 0.8

// RenderSocial scales logo uniformly to SocialFill of the canvas and centers it
// on a white background.
func RenderSocial(logo image.Image, f SocialFormat) *image.NRGBA {
	canvas := imaging.New(f.Width, f.Height, color.White)

	b := logo.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return canvas
	}

	scale := math.Min(
		float64(f.Width)*SocialFill/float64(b.Dx()),
		float64(f.Height)*SocialFill/float64(b.Dy()),
	)
	w := max(int(math.Round(float64(b.Dx())*scale)), 1)
	h := max(int(math.Round(float64(b.Dy())*scale)), 1)

	scaled := imaging.Resize(logo, w, h, imaging.Lanczos)
	return imaging.OverlayCenter(canvas, scaled, 1.0)
}
