package controller

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"onehux_backend/pkg/config"
)

var (
	pagesConfig *config.Config
	startedAt   = time.Now()
)

func InitPages(cfg *config.Config) {
	pagesConfig = cfg
}

type staticPage struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     map[string]string `json:"content,omitempty"`
}

var staticPages = map[string]staticPage{
	"home": {
		Title:       "Professional Website Development",
		Description: "We design and build fast, modern websites for businesses of every size.",
		Content: map[string]string{
			"headline": "Your business deserves a website that works as hard as you do.",
			"cta":      "Get a free quote today",
		},
	},
	"about": {
		Title:       "About Us",
		Description: "A small team of designers and engineers building websites since 2018.",
	},
	"services": {
		Title:       "Our Services",
		Description: "Business websites, e-commerce stores, portfolios, blogs, landing pages and custom web applications.",
	},
	"contact": {
		Title:       "Contact Us",
		Description: "Questions about a project? Send us a message and we will get back to you within one business day.",
	},
	"faq": {
		Title:       "Frequently Asked Questions",
		Description: "Answers to the questions we hear most about pricing, timelines and process.",
	},
	"privacy-policy": {
		Title:       "Privacy Policy",
		Description: "How we collect, use and protect your personal information.",
	},
	"terms-and-conditions": {
		Title:       "Terms and Conditions",
		Description: "The terms that govern the use of our website and services.",
	},
	"return-policy": {
		Title:       "Return Policy",
		Description: "Our refund and revision policy for website development projects.",
	},
}

func Page(slug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := staticPages[slug]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Page not found",
			})
		}
		return c.JSON(fiber.Map{"page": page})
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "onehux-backend",
		"uptime":  time.Since(startedAt).Round(time.Second).String(),
	})
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func Sitemap(c *fiber.Ctx) error {
	base := pagesConfig.Server.BaseURL

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base + "/", ChangeFreq: "weekly", Priority: 1.0},
			{Loc: base + "/services", ChangeFreq: "weekly", Priority: 0.9},
			{Loc: base + "/quote", ChangeFreq: "monthly", Priority: 0.9},
			{Loc: base + "/about", ChangeFreq: "monthly", Priority: 0.8},
			{Loc: base + "/contact", ChangeFreq: "monthly", Priority: 0.7},
			{Loc: base + "/faq", ChangeFreq: "monthly", Priority: 0.6},
			{Loc: base + "/privacy-policy", ChangeFreq: "yearly", Priority: 0.3},
			{Loc: base + "/terms-and-conditions", ChangeFreq: "yearly", Priority: 0.3},
			{Loc: base + "/return-policy", ChangeFreq: "yearly", Priority: 0.3},
		},
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build sitemap",
		})
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.SendString(xml.Header + string(body))
}

func Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(fmt.Sprintf("User-Agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", pagesConfig.Server.BaseURL))
}

func Humans(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString("/* TEAM */\nWeb development studio\n\n/* SITE */\nLanguage: English\nDoctype: HTML5\n")
}

func SecurityTxt(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(fmt.Sprintf("Contact: mailto:%s\nExpires: %s\n",
		pagesConfig.Email.From,
		time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)))
}
