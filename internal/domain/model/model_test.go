package model_test

import (
	"errors"
	"testing"

	model "github.com/artamananda/portfolio/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestProjectSlug(t *testing.T) {
	convey.Convey("Given project titles", t, func() {
		cases := map[string]string{
			"Teras Belajar Asik":       "teras-belajar-asik",
			"Brain Bleeding Detector":  "brain-bleeding-detector",
			"  Go -- Rewrite (v2)!  ":  "go-rewrite-v2",
			"C++ & Rust":               "c-rust",
			"Über Café":                "über-café",
		}

		convey.Convey("Then slugs are lower-case with single dashes", func() {
			for title, want := range cases {
				convey.So(model.Project{Title: title}.Slug(), convey.ShouldEqual, want)
			}
		})
	})
}

func TestProjectValidate(t *testing.T) {
	convey.Convey("Given a project", t, func() {
		p := model.Project{
			Title:       "Teras Belajar Asik",
			Description: "A free learning platform.",
			Href:        model.Ref("https://terasbelajarasik.web.id"),
			ImgSrc:      model.Ref("/static/images/telisik.png"),
		}

		convey.Convey("When every field is valid", func() {
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When optional fields are absent", func() {
			p.Href = nil
			p.ImgSrc = nil
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the image is an absolute URL", func() {
			p.ImgSrc = model.Ref("https://cdn.example.com/a.png")
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the title is blank", func() {
			p.Title = "   "
			err := p.Validate()
			convey.So(errors.Is(err, model.ErrInvalidProject), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "missing title")
		})

		convey.Convey("When the description is blank", func() {
			p.Description = ""
			err := p.Validate()
			convey.So(errors.Is(err, model.ErrInvalidProject), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "missing description")
		})

		convey.Convey("When the title has no letters or digits", func() {
			p.Title = "!!!"
			convey.So(p.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When href is provided but empty", func() {
			p.Href = model.Ref("")
			err := p.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "href")
		})

		convey.Convey("When href is relative or uses another scheme", func() {
			for _, bad := range []string{"terasbelajarasik.web.id", "ftp://example.com/x", "mailto:me@example.com", "https://"} {
				p.Href = model.Ref(bad)
				convey.So(p.Validate(), convey.ShouldNotBeNil)
			}
		})

		convey.Convey("When imgSrc is not a rooted path or URL", func() {
			for _, bad := range []string{"images/x.png", "//cdn.example.com/x.png", "/static/my image.png", ""} {
				p.ImgSrc = model.Ref(bad)
				convey.So(p.Validate(), convey.ShouldNotBeNil)
			}
		})
	})
}

func TestProfile(t *testing.T) {
	convey.Convey("Given a profile", t, func() {
		p := model.Profile{
			FirstName: "Artamananda",
			LastName:  ".",
			Avatar:    "https://example.com/profile.jpg",
			Website:   "https://artamananda.my.id",
			Social: model.Social{
				GitHub:    model.Ref("artamananda"),
				Twitter:   model.Ref(""),
				Instagram: model.Ref(" artamananda "),
			},
		}

		convey.Convey("Then the display name is composed", func() {
			convey.So(p.Name(), convey.ShouldEqual, "Artamananda.")
		})

		convey.Convey("Then it validates", func() {
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then only non-empty handles produce links, in platform order", func() {
			links := p.Social.Links()
			convey.So(links, convey.ShouldResemble, []model.SocialLink{
				{Platform: "github", Handle: "artamananda", URL: "https://github.com/artamananda"},
				{Platform: "instagram", Handle: "artamananda", URL: "https://www.instagram.com/artamananda"},
			})
		})

		convey.Convey("Then absent and empty handles stay distinguishable", func() {
			convey.So(p.Social.LinkedIn, convey.ShouldBeNil)
			convey.So(p.Social.Twitter, convey.ShouldNotBeNil)
			convey.So(*p.Social.Twitter, convey.ShouldEqual, "")
		})

		convey.Convey("When the first name is missing", func() {
			p.FirstName = ""
			convey.So(errors.Is(p.Validate(), model.ErrInvalidProfile), convey.ShouldBeTrue)
		})

		convey.Convey("When the avatar is not an absolute URL", func() {
			p.Avatar = "profile.jpg"
			convey.So(errors.Is(p.Validate(), model.ErrInvalidProfile), convey.ShouldBeTrue)
		})
	})
}
