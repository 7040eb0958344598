package renderer

import (
	"bytes"
	"strings"
	"time"

	"github.com/ONSdigital/dp-geo-resampler/health"
	"github.com/ONSdigital/dp-geo-resampler/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const svgReplacementText = "[SVG Here]"

// text that will need internationalising at some point:
var sourceText = "Source: "

// RenderHTML returns an HTML figure element with caption and footer, wrapping an SVG version of the map
func RenderHTML(request *models.ResampleRequest) ([]byte, error) {
	defer health.TrackTime(time.Now(), "renderer.RenderHTML")

	svgRequest, err := PrepareSVGRequest(request)
	if err != nil {
		return nil, err
	}

	s, err := renderHTML(request)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Replace(s, svgReplacementText, svgRequest.render(), 1)), nil
}

// renderHTML returns an HTML figure element with caption and footer, and a div with placeholder text for the map
func renderHTML(request *models.ResampleRequest) (string, error) {
	figure := createFigure(request)
	figure.AppendChild(element(atom.Div,
		attr("class", "map_container"),
		element(atom.Div, attr("class", "map"), svgReplacementText)))
	figure.AppendChild(text("\n"))
	addFooter(request, figure)

	var buf bytes.Buffer
	if err := html.Render(&buf, figure); err != nil {
		return "", err
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

// createFigure creates a figure element and adds a caption with the title
func createFigure(request *models.ResampleRequest) *html.Node {
	figure := element(atom.Figure,
		attr("class", "figure"),
		attr("id", mapID(request)),
		"\n")
	if len(request.Title) > 0 {
		figure.AppendChild(element(atom.Figcaption,
			attr("class", "map__caption"),
			request.Title))
		figure.AppendChild(text("\n"))
	}
	return figure
}

// mapID returns the id for the map, as used in links etc
func mapID(request *models.ResampleRequest) string {
	return "map-" + request.Filename + "-figure"
}

// addFooter adds a footer containing the source, if there is one
func addFooter(request *models.ResampleRequest, parent *html.Node) {
	if len(request.Source) == 0 {
		return
	}
	var source interface{} = request.Source
	if len(request.SourceLink) > 0 {
		source = element(atom.A,
			attr("href", request.SourceLink),
			request.Source)
	}
	parent.AppendChild(element(atom.Footer,
		attr("class", "figure__footer"),
		"\n",
		element(atom.P, attr("class", "figure__source"), sourceText, source),
		"\n"))
	parent.AppendChild(text("\n"))
}
