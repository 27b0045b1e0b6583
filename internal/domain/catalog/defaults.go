package catalog

import "github.com/artamananda/portfolio/internal/domain/model"

// DefaultProjects returns the built-in project listing.
func DefaultProjects() []model.Project {
	return []model.Project{
		{
			Title:       "Teras Belajar Asik",
			Description: "A FREE learning platform for college entrance exam preparation, offering various test modules and real-time assessments.",
			ImgSrc:      model.Ref("/static/images/telisik.png"),
			Href:        model.Ref("https://terasbelajarasik.web.id"),
		},
		{
			Title:       "Brain Bleeding Detector",
			Description: "A machine learning model to detect brain bleeding in CT scans using Faster R-CNN, providing accurate predictions to assist doctors.",
			ImgSrc:      model.Ref("/static/images/brain-bleeding-detector.png"),
			Href:        model.Ref("https://github.com/artamananda/brain-bleeding-classification"),
		},
	}
}

// DefaultProfile returns the built-in author profile.
func DefaultProfile() model.Profile {
	const firstName = "Artamananda"
	return model.Profile{
		FirstName: firstName,
		LastName:  ".",
		Avatar:    "https://pub-6129975179ce43e5b9eacdff0920180a.r2.dev/artamananda-my-id/profile.jpg",
		Website:   "https://sveltekit-blog-template.vercel.app",
		Bio: "I’m " + firstName + ", a software developer based in South Sumatera, Indonesia. " +
			"I focused on building modern web and mobile applications. " +
			"I use TypeScript, React, Svelte, and Next.js for high-performance frontends, " +
			"and React Native for seamless cross-platform mobile apps. " +
			"On the backend, I work with NestJS and GoFiber (Golang) to create scalable and efficient APIs. " +
			"I’m passionate about exploring new technologies, optimizing performance, and building innovative end-to-end solutions.",
		Social: model.Social{
			GitHub:    model.Ref("artamananda"),
			LinkedIn:  model.Ref("artamananda"),
			Instagram: model.Ref("artamananda"),
		},
	}
}
