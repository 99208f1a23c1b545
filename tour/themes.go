package tour

import (
	"fmt"
	"strings"
)

// CDN assets injected before a tour plays. Versions are pinned; these
// libraries change their option schemas between majors.
const (
	introJSCSS   = "https://cdnjs.cloudflare.com/ajax/libs/intro.js/7.2.0/introjs.min.css"
	introJSJS    = "https://cdnjs.cloudflare.com/ajax/libs/intro.js/7.2.0/intro.min.js"
	bootstrapCSS = "https://cdnjs.cloudflare.com/ajax/libs/bootstrap-tour/0.12.0/css/bootstrap-tour-standalone.min.css"
	bootstrapJS  = "https://cdnjs.cloudflare.com/ajax/libs/bootstrap-tour/0.12.0/js/bootstrap-tour-standalone.min.js"
	driverJSCSS  = "https://cdn.jsdelivr.net/npm/driver.js@1.3.1/dist/driver.css"
	driverJSJS   = "https://cdn.jsdelivr.net/npm/driver.js@1.3.1/dist/driver.js.iife.js"
	hopscotchCSS = "https://cdnjs.cloudflare.com/ajax/libs/hopscotch/0.3.1/css/hopscotch.min.css"
	hopscotchJS  = "https://cdnjs.cloudflare.com/ajax/libs/hopscotch/0.3.1/js/hopscotch.min.js"
)

// Assets returns the CSS and JS URLs a theme needs on the page.
func (t Theme) Assets() (css, js string) {
	switch t {
	case BootstrapTour:
		return bootstrapCSS, bootstrapJS
	case DriverJS:
		return driverJSCSS, driverJSJS
	case Hopscotch:
		return hopscotchCSS, hopscotchJS
	default:
		return introJSCSS, introJSJS
	}
}

// doneFlag is set on window when a generated tour finishes, so Play can poll
// for completion.
const doneFlag = "window._tourComplete"

func renderIntroJS(t *Tour, autoplayMS int) string {
	var steps []string
	for _, s := range t.steps {
		var parts []string
		if css := stepCSS(s); css != "" {
			parts = append(parts, "element: document.querySelector("+jsString(css)+")")
		}
		intro := s.Message
		if s.Title != "" {
			intro = "<b>" + s.Title + "</b><br/>" + s.Message
		}
		parts = append(parts, "intro: "+jsString(intro))
		if s.Alignment != "" {
			parts = append(parts, "position: "+jsString(s.Alignment))
		}
		steps = append(steps, "{"+strings.Join(parts, ", ")+"}")
	}

	var sb strings.Builder
	sb.WriteString("(function() {\n")
	sb.WriteString(doneFlag + " = false;\n")
	sb.WriteString("var tour = introJs().setOptions({\n")
	sb.WriteString("  steps: [" + strings.Join(steps, ",\n    ") + "],\n")
	sb.WriteString("  showProgress: true, exitOnOverlayClick: false\n")
	sb.WriteString("});\n")
	sb.WriteString("tour.onexit(function() { " + doneFlag + " = true; });\n")
	sb.WriteString("tour.oncomplete(function() { " + doneFlag + " = true; });\n")
	if autoplayMS > 0 {
		sb.WriteString(fmt.Sprintf(
			"var adv = setInterval(function() { if (%s) { clearInterval(adv); return; } tour.nextStep(); }, %d);\n",
			doneFlag, autoplayMS))
	}
	sb.WriteString("tour.start();\n")
	sb.WriteString("})();")
	return sb.String()
}

func renderBootstrap(t *Tour, autoplayMS int) string {
	var steps []string
	for _, s := range t.steps {
		var parts []string
		if css := stepCSS(s); css != "" {
			parts = append(parts, "element: "+jsString(css))
		} else {
			parts = append(parts, "orphan: true")
		}
		if s.Title != "" {
			parts = append(parts, "title: "+jsString(s.Title))
		}
		parts = append(parts, "content: "+jsString(s.Message))
		if s.Alignment != "" {
			parts = append(parts, "placement: "+jsString(s.Alignment))
		}
		if autoplayMS > 0 {
			parts = append(parts, fmt.Sprintf("duration: %d", autoplayMS))
		}
		steps = append(steps, "{"+strings.Join(parts, ", ")+"}")
	}

	var sb strings.Builder
	sb.WriteString("(function() {\n")
	sb.WriteString(doneFlag + " = false;\n")
	sb.WriteString("var tour = new Tour({\n")
	sb.WriteString("  steps: [" + strings.Join(steps, ",\n    ") + "],\n")
	sb.WriteString("  backdrop: true, storage: false,\n")
	sb.WriteString("  onEnd: function() { " + doneFlag + " = true; }\n")
	sb.WriteString("});\n")
	sb.WriteString("tour.init();\ntour.start();\n")
	sb.WriteString("})();")
	return sb.String()
}

func renderDriverJS(t *Tour) string {
	var steps []string
	for _, s := range t.steps {
		popover := "popover: {title: " + jsString(s.Title) + ", description: " + jsString(s.Message)
		if s.Alignment != "" {
			popover += ", side: " + jsString(s.Alignment)
		}
		popover += "}"
		if css := stepCSS(s); css != "" {
			steps = append(steps, "{element: "+jsString(css)+", "+popover+"}")
		} else {
			steps = append(steps, "{"+popover+"}")
		}
	}

	var sb strings.Builder
	sb.WriteString("(function() {\n")
	sb.WriteString(doneFlag + " = false;\n")
	sb.WriteString("var d = window.driver.js.driver({\n")
	sb.WriteString("  showProgress: true,\n")
	sb.WriteString("  steps: [" + strings.Join(steps, ",\n    ") + "],\n")
	sb.WriteString("  onDestroyed: function() { " + doneFlag + " = true; }\n")
	sb.WriteString("});\nd.drive();\n")
	sb.WriteString("})();")
	return sb.String()
}

func renderHopscotch(t *Tour) string {
	var steps []string
	for _, s := range t.steps {
		target := "document.body"
		if css := stepCSS(s); css != "" {
			target = "document.querySelector(" + jsString(css) + ")"
		}
		placement := s.Alignment
		if placement == "" {
			placement = "bottom"
		}
		steps = append(steps, fmt.Sprintf("{target: %s, title: %s, content: %s, placement: %s}",
			target, jsString(s.Title), jsString(s.Message), jsString(placement)))
	}

	var sb strings.Builder
	sb.WriteString("(function() {\n")
	sb.WriteString(doneFlag + " = false;\n")
	sb.WriteString("hopscotch.listen('end', function() { " + doneFlag + " = true; });\n")
	sb.WriteString("hopscotch.startTour({\n")
	sb.WriteString("  id: " + jsString(t.Name) + ",\n")
	sb.WriteString("  steps: [" + strings.Join(steps, ",\n    ") + "]\n")
	sb.WriteString("});\n")
	sb.WriteString("})();")
	return sb.String()
}
