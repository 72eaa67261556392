package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/chromedp/cdproto/accessibility"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/locator"
)

// Functions run with the previous match bound to this and return every candidate in document order
const (
	findCSS = `function(selector) {
	return Array.from(this.querySelectorAll(selector));
}`

	findText = `function(value, exact) {
	const norm = (s) => (s || "").replace(/\s+/g, " ").trim();
	const want = exact ? norm(value) : norm(value).toLowerCase();
	const matches = (el) => {
		const text = norm(el.innerText !== undefined ? el.innerText : el.textContent);
		return exact ? text === want : text.toLowerCase().includes(want);
	};
	const root = this.nodeType === Node.DOCUMENT_NODE ? this.documentElement : this;
	const all = [root, ...root.querySelectorAll("*")].filter((el) => el.tagName !== "SCRIPT" && el.tagName !== "STYLE");
	const hits = all.filter(matches);
	return hits.filter((el) => !hits.some((other) => other !== el && el.contains(other)));
}`

	findPlaceholder = `function(value, exact) {
	const want = exact ? value : value.toLowerCase();
	return Array.from(this.querySelectorAll("[placeholder]")).filter((el) => {
		const placeholder = el.getAttribute("placeholder") || "";
		return exact ? placeholder === want : placeholder.toLowerCase().includes(want);
	});
}`

	isVisible = `function() {
	const el = this.nodeType === Node.ELEMENT_NODE ? this : this.parentElement;
	if (!el || !el.isConnected) {
		return false;
	}
	const style = getComputedStyle(el);
	if (style.visibility === "hidden" || style.display === "none") {
		return false;
	}
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
}`

	clickPoint = `function() {
	this.scrollIntoView({block: "center", inline: "center"});
	const rect = this.getBoundingClientRect();
	return [rect.left + rect.width / 2, rect.top + rect.height / 2];
}`

	focus = `function() {
	if (typeof this.focus === "function") {
		this.focus();
	}
	return true;
}`
)

// resolve walks the locator steps from the document and returns the first element matching the whole chain
func resolve(ctx context.Context, loc locator.Locator) (runtime.RemoteObjectID, error) {
	doc, exception, err := runtime.Evaluate("document").Do(ctx)
	if err != nil {
		return "", err
	}

	if exception != nil || doc.ObjectID == "" {
		return "", errors.ErrBrowserNotReady
	}

	found, err := match(ctx, doc.ObjectID, loc.Steps)
	if err != nil {
		return "", err
	}

	if found == "" {
		return "", fmt.Errorf("%w: %s", errors.ErrElementNotFound, loc.String())
	}

	return found, nil
}

// match tries every candidate of the first step below root until one satisfies the remaining steps
func match(ctx context.Context, root runtime.RemoteObjectID, steps []locator.Step) (runtime.RemoteObjectID, error) {
	if len(steps) == 0 {
		return root, nil
	}

	candidates, err := resolveStep(ctx, root, steps[0])
	if err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		found, err := match(ctx, candidate, steps[1:])
		if err != nil {
			return "", err
		}

		if found != "" {
			return found, nil
		}
	}

	return "", nil
}

func resolveStep(ctx context.Context, root runtime.RemoteObjectID, step locator.Step) ([]runtime.RemoteObjectID, error) {
	switch step.Kind {
	case locator.KindRole:
		return resolveRole(ctx, root, step)
	case locator.KindText:
		return callElements(ctx, root, findText, step.Value, step.Exact)
	case locator.KindPlaceholder:
		return callElements(ctx, root, findPlaceholder, step.Value, step.Exact)
	default:
		return callElements(ctx, root, findCSS, step.Value)
	}
}

// resolveRole queries the accessibility tree below root for every node with the role and accessible name
func resolveRole(ctx context.Context, root runtime.RemoteObjectID, step locator.Step) ([]runtime.RemoteObjectID, error) {
	nodes, err := accessibility.QueryAXTree().WithObjectID(root).WithRole(step.Value).Do(ctx)
	if err != nil {
		return nil, err
	}

	var found []runtime.RemoteObjectID

	for _, node := range nodes {
		if node.Ignored || node.BackendDOMNodeID == 0 {
			continue
		}

		if step.HasName && !nameMatches(axName(node), step.Name, step.Exact) {
			continue
		}

		obj, err := dom.ResolveNode().WithBackendNodeID(cdp.BackendNodeID(node.BackendDOMNodeID)).Do(ctx)
		if err != nil {
			return nil, err
		}

		found = append(found, obj.ObjectID)
	}

	return found, nil
}

func axName(node *accessibility.Node) string {
	if node.Name == nil || len(node.Name.Value) == 0 {
		return ""
	}

	var name string
	if err := json.Unmarshal(node.Name.Value, &name); err != nil {
		return ""
	}

	return name
}

// nameMatches compares accessible names the way role selectors do: case-insensitive substring unless exact
func nameMatches(actual, want string, exact bool) bool {
	actual = strings.Join(strings.Fields(actual), " ")
	want = strings.Join(strings.Fields(want), " ")

	if exact {
		return actual == want
	}

	return strings.Contains(strings.ToLower(actual), strings.ToLower(want))
}

// callElements runs a function declaration returning an array of nodes and collects them in index order
func callElements(ctx context.Context, object runtime.RemoteObjectID, declaration string, args ...any) ([]runtime.RemoteObjectID, error) {
	res, err := call(ctx, object, declaration, false, args...)
	if err != nil {
		return nil, err
	}

	if res.ObjectID == "" {
		return nil, nil
	}

	props, _, _, exception, err := runtime.GetProperties(res.ObjectID).WithOwnProperties(true).Do(ctx)
	if err != nil {
		return nil, err
	}

	if exception != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidSelector, exceptionText(exception))
	}

	return arrayElements(props), nil
}

// arrayElements keeps the indexed entries of an array's own properties, ordered by index
func arrayElements(props []*runtime.PropertyDescriptor) []runtime.RemoteObjectID {
	type indexed struct {
		index int
		id    runtime.RemoteObjectID
	}

	var entries []indexed

	for _, prop := range props {
		index, err := strconv.Atoi(prop.Name)
		if err != nil || prop.Value == nil || prop.Value.ObjectID == "" {
			continue
		}

		entries = append(entries, indexed{index: index, id: prop.Value.ObjectID})
	}

	slices.SortFunc(entries, func(a, b indexed) int { return a.index - b.index })

	ids := make([]runtime.RemoteObjectID, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}

	return ids
}

// callValue runs a function declaration on the object and decodes its JSON result into out
func callValue(ctx context.Context, object runtime.RemoteObjectID, declaration string, out any) error {
	res, err := call(ctx, object, declaration, true)
	if err != nil {
		return err
	}

	if len(res.Value) == 0 {
		return nil
	}

	return json.Unmarshal(res.Value, out)
}

func call(ctx context.Context, object runtime.RemoteObjectID, declaration string, byValue bool, args ...any) (*runtime.RemoteObject, error) {
	encoded, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}

	wrapped := fmt.Sprintf("function() { return (%s).apply(this, %s); }", declaration, encoded)

	res, exception, err := runtime.CallFunctionOn(wrapped).
		WithObjectID(object).
		WithReturnByValue(byValue).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	if exception != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidSelector, exceptionText(exception))
	}

	return res, nil
}

func exceptionText(e *runtime.ExceptionDetails) string {
	if e.Exception != nil && e.Exception.Description != "" {
		return e.Exception.Description
	}

	return e.Text
}
