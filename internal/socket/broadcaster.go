package socket

// Broadcaster provides high-level methods for pushing admin-feed events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// BroadcastLeadCreated announces a new contact-form lead to the admin panel
func (b *Broadcaster) BroadcastLeadCreated(lead map[string]interface{}) {
	b.hub.Broadcast(MessageLeadCreated, lead)
}

// BroadcastLeadUpdated announces a status/priority change on a lead
func (b *Broadcaster) BroadcastLeadUpdated(lead map[string]interface{}) {
	b.hub.Broadcast(MessageLeadUpdated, lead)
}

// BroadcastLeadDeleted announces a lead removal
func (b *Broadcaster) BroadcastLeadDeleted(id string) {
	b.hub.Broadcast(MessageLeadDeleted, map[string]interface{}{"id": id})
}

// BroadcastProjectCreated announces a new portfolio project
func (b *Broadcaster) BroadcastProjectCreated(project map[string]interface{}) {
	b.hub.Broadcast(MessageProjectCreated, project)
}

// BroadcastProjectUpdated announces a portfolio project change
func (b *Broadcaster) BroadcastProjectUpdated(project map[string]interface{}) {
	b.hub.Broadcast(MessageProjectUpdated, project)
}

// BroadcastProjectDeleted announces a portfolio project removal
func (b *Broadcaster) BroadcastProjectDeleted(id string) {
	b.hub.Broadcast(MessageProjectDeleted, map[string]interface{}{"id": id})
}

// BroadcastProjectFeatured announces which project is now featured
func (b *Broadcaster) BroadcastProjectFeatured(id string) {
	b.hub.Broadcast(MessageProjectFeatured, map[string]interface{}{"id": id})
}

// BroadcastPlanCreated announces a new pricing plan
func (b *Broadcaster) BroadcastPlanCreated(plan map[string]interface{}) {
	b.hub.Broadcast(MessagePlanCreated, plan)
}

// BroadcastPlanUpdated announces a pricing plan change
func (b *Broadcaster) BroadcastPlanUpdated(plan map[string]interface{}) {
	b.hub.Broadcast(MessagePlanUpdated, plan)
}

// BroadcastContentUpdated announces a site content change
func (b *Broadcaster) BroadcastContentUpdated(section string) {
	b.hub.Broadcast(MessageContentUpdated, map[string]interface{}{"section": section})
}
