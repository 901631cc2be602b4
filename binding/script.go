package binding

import (
	"sort"
	"time"

	"github.com/andygello555/json-bind/dom"
	"github.com/andygello555/json-bind/dom/node"
	"github.com/andygello555/json-bind/globals"
	"github.com/andygello555/json-bind/utils"
	"github.com/robertkrimen/otto"
)

// Keeps the value at a target path in step with a JS expression evaluated over the document.
//
// The expression sees the document as a plain JS object bound to the variable named by
// globals.ScriptVariableName, so member access inside it (json.person.age and friends) is the
// dynamic-access shim layered strictly on top of the store's explicit Get/Set API. The expression is
// evaluated once at construction, then again on every document change; the write of the result runs
// under a Guard so the recomputation never feeds back into itself.
type Computed struct {
	doc        *dom.Document
	targetPath string
	expression string
	vm         *otto.Otto
	guard      Guard
	token      string
}

// Wires a computed value for the given expression, evaluating it immediately.
// An expression that fails its first evaluation returns a ScriptError and wires nothing; errors on
// later re-evaluations skip the write, keeping the last good value in place.
// Returns a pointer to the Computed; call Close to detach it.
func NewComputed(doc *dom.Document, targetPath, expression string) (*Computed, error) {
	c := &Computed{
		doc:        doc,
		targetPath: targetPath,
		expression: expression,
		vm:         otto.New(),
	}
	if err := c.recompute(); err != nil {
		return nil, err
	}
	c.token = doc.Subscribe(func(node.Change) {
		_ = c.recompute()
	})
	return c, nil
}

// Detaches the computed value from its document. Returns true if it was still attached.
func (c *Computed) Close() bool {
	return c.doc.Unsubscribe(c.token)
}

func (c *Computed) recompute() (err error) {
	c.guard.Do(func() {
		if setErr := c.vm.Set(globals.ScriptVariableName, node.ToGo(c.doc.Root())); setErr != nil {
			err = utils.ScriptError.FillError(setErr.Error(), c.expression)
			return
		}
		result, runErr := runWithInterrupt(c.vm, c.expression)
		if runErr != nil {
			err = runErr
			return
		}
		exported, expErr := result.Export()
		if expErr != nil {
			err = utils.ScriptError.FillError(expErr.Error(), c.expression)
			return
		}
		c.doc.Set(c.targetPath, exported)
	})
	return err
}

// Executes the given JS source with the document exported into the script environment under the
// variable named by globals.ScriptVariableName. After the script returns, the (possibly mutated)
// object is reconciled back into the document: keys the script deleted are removed and the rest are
// set through the ordinary store contract, so scalar-equal writes stay silent and every real change
// notifies as usual. The document's subscriptions are re-wired afterwards since the script may have
// reshaped the structure.
func RunScript(doc *dom.Document, src string) error {
	vm := otto.New()
	if err := vm.Set(globals.ScriptVariableName, node.ToGo(doc.Root())); err != nil {
		return utils.ScriptError.FillError(err.Error(), src)
	}
	if _, err := runWithInterrupt(vm, src); err != nil {
		return err
	}

	value, err := vm.Get(globals.ScriptVariableName)
	if err != nil {
		return utils.ScriptError.FillError(err.Error(), src)
	}
	exported, err := value.Export()
	if err != nil {
		return utils.ScriptError.FillError(err.Error(), src)
	}
	insides, isMap := exported.(map[string]interface{})
	if !isMap {
		return utils.ScriptError.FillError("the document variable no longer holds an object", src)
	}

	applyMap(doc.Root(), insides)
	doc.Rewire()
	return nil
}

// Reconciles obj with the map that came back from a script environment: remove what the script
// deleted, then set the remaining keys in sorted order (JS objects carry no usable order here).
func applyMap(obj *node.Object, insides map[string]interface{}) {
	for _, key := range obj.Keys() {
		if _, kept := insides[key]; !kept {
			obj.Remove(key)
		}
	}
	keys := make([]string, 0, len(insides))
	for key := range insides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		obj.Set(key, insides[key])
	}
}

// Runs src in the given VM with the interrupt pattern that guards against the halting problem: a
// timer fires after globals.HaltingDelay units and panics the VM out of whatever it is doing, which
// is caught and wrapped as a HaltingProblem error.
func runWithInterrupt(vm *otto.Otto, src string) (value otto.Value, err error) {
	start := time.Now()
	// This will catch the panic thrown by the interrupt timer (or by otto itself)
	defer func() {
		duration := time.Since(start)
		if caught := recover(); caught != nil {
			if caught == utils.HaltingProblem {
				err = utils.HaltingProblem.FillError(duration.String(), src)
				return
			}
			// Another panic that we should not swallow
			panic(caught)
		}
	}()

	vm.Interrupt = make(chan func(), 1)
	go func() {
		time.Sleep(time.Duration(globals.HaltingDelay) * globals.HaltingDelayUnits)
		vm.Interrupt <- func() {
			panic(utils.HaltingProblem)
		}
	}()

	value, err = vm.Run(src)
	if err != nil {
		err = utils.ScriptError.FillError(err.Error(), src)
	}
	return value, err
}
