package export

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithScale sets the device pixel ratio every layout constant is multiplied by.
func WithScale(scale float64) Option {
	return func(c *Composer) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithSiteURL sets the watermark text.
func WithSiteURL(url string) Option {
	return func(c *Composer) {
		if url != "" {
			c.siteURL = url
		}
	}
}
