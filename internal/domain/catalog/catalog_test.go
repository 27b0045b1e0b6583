package catalog_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/artamananda/portfolio/internal/domain/catalog"
	"github.com/artamananda/portfolio/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the built-in projects", t, func() {
		c, err := catalog.New(catalog.DefaultProjects())
		So(err, ShouldBeNil)

		Convey("Then they keep their display order", func() {
			all := c.All()
			So(c.Len(), ShouldEqual, 2)
			So(all[0].Title, ShouldEqual, "Teras Belajar Asik")
			So(all[1].Title, ShouldEqual, "Brain Bleeding Detector")
		})

		Convey("Then every entry satisfies the listing invariants", func() {
			for _, p := range c.All() {
				So(p.Title, ShouldNotBeBlank)
				So(p.Description, ShouldNotBeBlank)
				So(p.Validate(), ShouldBeNil)
			}
		})

		Convey("Then projects are found by slug", func() {
			p, err := c.Find("brain-bleeding-detector")
			So(err, ShouldBeNil)
			So(*p.Href, ShouldEqual, "https://github.com/artamananda/brain-bleeding-classification")
		})

		Convey("Then unknown slugs report not found", func() {
			_, err := c.Find("nope")
			So(errors.Is(err, catalog.ErrProjectNotFound), ShouldBeTrue)
		})

		Convey("Then callers cannot mutate the catalog", func() {
			all := c.All()
			all[0].Title = "changed"
			*all[0].Href = "https://evil.example.com"

			again := c.All()
			So(again[0].Title, ShouldEqual, "Teras Belajar Asik")
			So(*again[0].Href, ShouldEqual, "https://terasbelajarasik.web.id")
		})

		Convey("Then concurrent readers see the same listing", func() {
			var wg sync.WaitGroup
			results := make([]int, 16)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = len(c.All())
				}(i)
			}
			wg.Wait()
			for _, n := range results {
				So(n, ShouldEqual, 2)
			}
		})
	})
}

func TestNewCatalogValidation(t *testing.T) {
	Convey("Given project input", t, func() {
		Convey("When an entry is invalid", func() {
			_, err := catalog.New([]model.Project{
				{Title: "ok", Description: "fine"},
				{Title: "", Description: "no title"},
			})

			Convey("Then construction fails naming the entry", func() {
				So(errors.Is(err, model.ErrInvalidProject), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "project 1")
			})
		})

		Convey("When two titles share a slug", func() {
			_, err := catalog.New([]model.Project{
				{Title: "My Site", Description: "a"},
				{Title: "my-site", Description: "b"},
			})

			Convey("Then construction fails", func() {
				So(errors.Is(err, catalog.ErrDuplicateSlug), ShouldBeTrue)
			})
		})

		Convey("When MustNew gets an invalid entry", func() {
			Convey("Then it panics", func() {
				So(func() { catalog.MustNew([]model.Project{{Title: "x"}}) }, ShouldPanic)
			})
		})

		Convey("When the built-in catalog is requested", func() {
			c := catalog.Default()

			Convey("Then it holds the default projects", func() {
				So(c.Len(), ShouldEqual, len(catalog.DefaultProjects()))
			})
		})

		Convey("When the input is empty", func() {
			c, err := catalog.New(nil)

			Convey("Then an empty catalog is valid", func() {
				So(err, ShouldBeNil)
				So(c.Len(), ShouldEqual, 0)
				So(c.All(), ShouldBeEmpty)
			})
		})
	})
}

func TestDefaultProfile(t *testing.T) {
	Convey("Given the built-in profile", t, func() {
		p := catalog.DefaultProfile()

		Convey("Then it validates and composes the display name", func() {
			So(p.Validate(), ShouldBeNil)
			So(p.Name(), ShouldEqual, "Artamananda.")
			So(p.Bio, ShouldStartWith, "I’m Artamananda,")
		})

		Convey("Then twitter is absent and yields no link", func() {
			So(p.Social.Twitter, ShouldBeNil)
			links := p.Social.Links()
			So(len(links), ShouldEqual, 3)
			for _, l := range links {
				So(l.Platform, ShouldNotEqual, "twitter")
			}
		})
	})
}
