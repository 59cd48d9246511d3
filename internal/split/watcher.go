package split

import "fmt"

// ViewportWatcher supplies the container size and notifies on change.
// Subscribe returns a function that removes the subscription.
type ViewportWatcher interface {
	Current() ViewportSize
	Subscribe(fn func(ViewportSize)) (unsubscribe func())
}

// Watch ties the controller to w. If the controller is not yet initialized
// it is initialized from w.Current(). Every later notification resets the
// geometry and is forwarded to onReset, which may be nil.
//
// Call Close when the owning widget goes away.
func (c *Controller) Watch(w ViewportWatcher, onReset func(Update)) error {
	if c.unsubscribe != nil {
		return fmt.Errorf("controller is already watching a viewport")
	}
	if !c.initialized {
		if _, _, err := c.Initialize(w.Current()); err != nil {
			return err
		}
	}
	c.unsubscribe = w.Subscribe(func(v ViewportSize) {
		if _, _, err := c.HandleViewportChange(v); err != nil {
			c.log.Warn("viewport change ignored", "error", err)
			return
		}
		if onReset != nil {
			onReset(c.changed(true))
		}
	})
	return nil
}

// Close deregisters from the viewport watcher. It is safe to call more than
// once.
func (c *Controller) Close() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}
