package viewmodel

import "github.com/gofiber/fiber/v2"

type Layout struct {
	Page          string
	FromProtected bool
	IsError       bool
	Msg           fiber.Map
	Username      string
	IsAdmin       bool
	IsDemo        bool
	OGViewModel   *OpenGraph
}

// OpenGraph holds the og: meta tags for a page
type OpenGraph struct {
	URL         string
	Image       string
	ImageAlt    string
	Title       string
	Description string
}
