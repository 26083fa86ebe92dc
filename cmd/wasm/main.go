//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.DefaultConfig())

	// Create the engine API object
	plotEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	plotEngine.Set("loadDocument", js.FuncOf(loadDocument))
	plotEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	plotEngine.Set("setZoom", js.FuncOf(setZoom))
	plotEngine.Set("panBy", js.FuncOf(panBy))
	plotEngine.Set("fitAll", js.FuncOf(fitAll))
	plotEngine.Set("fitNode", js.FuncOf(fitNode))
	plotEngine.Set("fitSelection", js.FuncOf(fitSelection))
	plotEngine.Set("setSelection", js.FuncOf(setSelection))
	plotEngine.Set("createRegion", js.FuncOf(createRegion))
	plotEngine.Set("moveVertex", js.FuncOf(moveVertex))
	plotEngine.Set("insertVertex", js.FuncOf(insertVertex))
	plotEngine.Set("removeVertex", js.FuncOf(removeVertex))
	plotEngine.Set("addPlacement", js.FuncOf(addPlacement))
	plotEngine.Set("removePlacement", js.FuncOf(removePlacement))
	plotEngine.Set("renameNode", js.FuncOf(renameNode))
	plotEngine.Set("reparentNode", js.FuncOf(reparentNode))

	// --- Queries (frontend ← backend) ---
	plotEngine.Set("render", js.FuncOf(render))
	plotEngine.Set("getView", js.FuncOf(getView))
	plotEngine.Set("getDocument", js.FuncOf(getDocument))
	plotEngine.Set("getSelection", js.FuncOf(getSelection))
	plotEngine.Set("hitTestVertex", js.FuncOf(hitTestVertex))
	plotEngine.Set("isDrag", js.FuncOf(isDrag))
	plotEngine.Set("handleSize", js.FuncOf(handleSize))
	plotEngine.Set("worldToScreen", js.FuncOf(worldToScreen))
	plotEngine.Set("screenToWorld", js.FuncOf(screenToWorld))

	// Register on global scope
	js.Global().Set("regenesisEngine", plotEngine)

	// Signal that WASM is ready
	js.Global().Set("regenesisWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	if err := eng.LoadDocument([]byte(args[0].String())); err != nil {
		return errResult(err)
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	projectID := "proj_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		projectID = args[0].String()
	}

	eng.SetDocument(document.NewSampleDocument(projectID))
	return okResult()
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(eng.View().Zoom)
	}
	return js.ValueOf(eng.SetZoom(args[0].Float()))
}

func panBy(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PanBy(args[0].Float(), args[1].Float())
	return nil
}

func fitAll(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	margin := 0.1
	if len(args) > 2 {
		margin = args[2].Float()
	}
	view := eng.FitAll(args[0].Float(), args[1].Float(), margin)
	return viewValue(view)
}

func fitNode(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	margin := 0.1
	if len(args) > 3 {
		margin = args[3].Float()
	}
	view := eng.FitNode(args[0].String(), args[1].Float(), args[2].Float(), margin)
	return viewValue(view)
}

func fitSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	margin := 0.1
	if len(args) > 2 {
		margin = args[2].Float()
	}
	view := eng.FitSelection(args[0].Float(), args[1].Float(), margin)
	return viewValue(view)
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

// createRegion takes (parentID, nodeID, polygonID, name, verticesJSON, fill, stroke).
func createRegion(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	var vertices []document.Vertex
	if err := json.Unmarshal([]byte(args[4].String()), &vertices); err != nil {
		return errResult(err)
	}
	fill, stroke := "", ""
	if len(args) > 5 {
		fill = args[5].String()
	}
	if len(args) > 6 {
		stroke = args[6].String()
	}
	if err := eng.CreateRegion(args[0].String(), args[1].String(), args[2].String(), args[3].String(), vertices, fill, stroke); err != nil {
		return errResult(err)
	}
	return okResult()
}

func moveVertex(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	if err := eng.MoveVertex(args[0].String(), args[1].Int(), args[2].Float(), args[3].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func insertVertex(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	if err := eng.InsertVertex(args[0].String(), args[1].Int(), args[2].Float(), args[3].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func removeVertex(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	if err := eng.RemoveVertex(args[0].String(), args[1].Int()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func addPlacement(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	if err := eng.AddPlacement(args[0].String(), args[1].String(), args[2].String(), args[3].Float(), args[4].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func removePlacement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.RemovePlacement(args[0].String())
	return nil
}

func renameNode(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	if err := eng.RenameNode(args[0].String(), args[1].String()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func reparentNode(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	index := -1
	if len(args) > 2 {
		index = args[2].Int()
	}
	if err := eng.ReparentNode(args[0].String(), args[1].String(), index); err != nil {
		return errResult(err)
	}
	return okResult()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func getView(this js.Value, args []js.Value) interface{} {
	return viewValue(eng.View())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	doc := eng.Document()
	if doc == nil {
		return js.ValueOf("null")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	sel := eng.Selection()
	out := make([]interface{}, len(sel))
	for i, id := range sel {
		out[i] = id
	}
	return js.ValueOf(out)
}

func hitTestVertex(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"hit": false})
	}
	hit, ok := eng.HitTestVertex(args[0].Float(), args[1].Float())
	if !ok {
		return js.ValueOf(map[string]interface{}{"hit": false})
	}
	return js.ValueOf(map[string]interface{}{
		"hit":         true,
		"nodeId":      hit.NodeID,
		"polygonId":   hit.PolygonID,
		"vertexIndex": hit.VertexIndex,
	})
}

func isDrag(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.IsDrag(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float()))
}

func handleSize(this js.Value, args []js.Value) interface{} {
	zoom := eng.View().Zoom
	if len(args) > 0 {
		zoom = args[0].Float()
	}
	return js.ValueOf(engine.HandleSize(zoom))
}

func worldToScreen(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	p := engine.WorldToScreen(engine.Point{X: args[0].Float(), Y: args[1].Float()}, eng.View())
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

func screenToWorld(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	p := engine.ScreenToWorld(engine.Point{X: args[0].Float(), Y: args[1].Float()}, eng.View())
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

func viewValue(v engine.ViewState) js.Value {
	return js.ValueOf(map[string]interface{}{
		"zoom": v.Zoom,
		"panX": v.Pan.X,
		"panY": v.Pan.Y,
	})
}
