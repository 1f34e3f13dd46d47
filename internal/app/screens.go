package app

import (
	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/nav"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/screens/intro"
	"github.com/abhisek/scanquiz/internal/screens/placeholder"
	"github.com/abhisek/scanquiz/internal/screens/quiz"
	"github.com/abhisek/scanquiz/internal/screens/results"
	"github.com/abhisek/scanquiz/internal/screens/scanview"
	"github.com/abhisek/scanquiz/internal/screens/selection"
)

// Screens returns the factory that maps each navigation state to its
// screen. Patients missing from the catalog get the placeholder.
func Screens(cat *catalog.Catalog, viewerOpts scanview.Options) screen.Factory {
	return func(p screen.Props) screen.Screen {
		if p.State.Kind != nav.KindSelection && !p.Found {
			return placeholder.New(p.State.PatientID)
		}
		switch p.State.Kind {
		case nav.KindIntro:
			return intro.New(p)
		case nav.KindQuiz:
			return quiz.New(p)
		case nav.KindScanViewer:
			return scanview.New(p, viewerOpts)
		case nav.KindResults:
			return results.New(p)
		default:
			return selection.New(cat.Cases())
		}
	}
}
