package recorder

// sessionStorage keys used by the in-page shim. The activation flag survives
// same-tab navigations, so re-injecting the shim after a page load resumes
// the same recording.
const (
	storageKey   = "recorded_actions"
	activatedKey = "recorder_activated"
	pausedKey    = "pause_recorder"
)

// shimJS is the in-page recorder. It picks the most stable CSS selector it
// can for each event target: an id, else the shortest attribute path that
// matches exactly one element, else a positional nth-of-type path.
//
// Actions are appended to sessionStorage as [kind, selector, value, origin,
// ms] tuples so they survive navigations within the same tab.
const shimJS = `() => {
	if (window.__recShim) { return; }
	window.__recShim = true;
	var t0 = Date.now();

	function store(kind, sel, value) {
		if (sessionStorage.getItem('` + pausedKey + `') === 'yes') { return; }
		var acts = JSON.parse(sessionStorage.getItem('` + storageKey + `') || '[]');
		acts.push([kind, sel, value, location.origin, Date.now() - t0]);
		sessionStorage.setItem('` + storageKey + `', JSON.stringify(acts));
	}

	if (sessionStorage.getItem('` + activatedKey + `') === 'yes') {
		store('_url_', '', location.href);
	} else {
		sessionStorage.setItem('` + activatedKey + `', 'yes');
		store('begin', '', location.href);
	}

	function unique(sel) {
		try { return document.querySelectorAll(sel).length === 1; }
		catch (e) { return false; }
	}

	function attrSelector(el) {
		var attrs = ['name', 'data-testid', 'data-test', 'data-qa',
			'aria-label', 'title', 'placeholder', 'href', 'type'];
		for (var i = 0; i < attrs.length; i++) {
			var v = el.getAttribute(attrs[i]);
			if (!v || v.indexOf('"') >= 0) { continue; }
			var sel = el.tagName.toLowerCase() + '[' + attrs[i] + '="' + v + '"]';
			if (unique(sel)) { return sel; }
		}
		return null;
	}

	function classSelector(el) {
		var classes = (el.getAttribute('class') || '').trim().split(/\s+/);
		for (var i = 0; i < classes.length; i++) {
			if (!classes[i] || /[^-_a-zA-Z0-9]/.test(classes[i])) { continue; }
			var sel = el.tagName.toLowerCase() + '.' + classes[i];
			if (unique(sel)) { return sel; }
		}
		return null;
	}

	function pathSelector(el) {
		var parts = [];
		while (el && el.nodeType === 1 && el.tagName !== 'HTML') {
			var tag = el.tagName.toLowerCase();
			if (el.id && unique('#' + CSS.escape(el.id))) {
				parts.unshift('#' + CSS.escape(el.id));
				break;
			}
			var n = 1, sib = el;
			while ((sib = sib.previousElementSibling)) {
				if (sib.tagName === el.tagName) { n++; }
			}
			parts.unshift(tag + ':nth-of-type(' + n + ')');
			el = el.parentElement;
		}
		return parts.join(' > ');
	}

	function bestSelector(el) {
		if (el.id && unique('#' + CSS.escape(el.id))) { return '#' + CSS.escape(el.id); }
		var sel = attrSelector(el) || classSelector(el);
		if (sel) { return sel; }
		return pathSelector(el);
	}

	document.addEventListener('click', function(e) {
		var el = e.target.closest('a, button, input, select, textarea, label, [onclick]') || e.target;
		if (el.tagName === 'SELECT') { return; }
		store('click', bestSelector(el), '');
	}, true);

	document.addEventListener('dblclick', function(e) {
		store('dblclick', bestSelector(e.target), '');
	}, true);

	document.addEventListener('change', function(e) {
		var el = e.target;
		if (el.tagName === 'SELECT') {
			var opt = el.options[el.selectedIndex];
			store('select', bestSelector(el), opt ? opt.text : '');
		} else if (el.tagName === 'INPUT' || el.tagName === 'TEXTAREA') {
			store('input', bestSelector(el), el.value);
		}
	}, true);

	document.addEventListener('submit', function(e) {
		store('submit', bestSelector(e.target), '');
	}, true);
}`
